package services

import (
	"fmt"

	"sahelbus/internal/domain/models"
	"sahelbus/internal/utils"
)

// LogNotifier is the default booking hook: it only logs. Real
// deployments swap in the mail/SMS sender.
type LogNotifier struct{}

func (LogNotifier) BookingCreated(res models.Reservation) {
	utils.LogEvent("", "notify", "booking_created",
		fmt.Sprintf("reservation_id=%d email=%s", res.ID, res.PassengerEmail))
}
