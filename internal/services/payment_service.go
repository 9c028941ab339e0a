package services

import (
	"fmt"

	"sahelbus/internal/domain/models"
	"sahelbus/internal/ledger"
	"sahelbus/internal/utils"
)

// PaymentService applies BPay callbacks to reservations. The gateway
// is mocked and always reports success; the service still records a
// payment row per settled transaction.
type PaymentService struct {
	Ledger    ledger.Store
	Payments  PaymentStore
	RequestID string
}

// BPayCallback marks the reservation paid. Gateways redeliver
// callbacks, so a reservation that is already paid is acknowledged
// without a second transition or payment row.
func (s PaymentService) BPayCallback(reservationID int64, transactionID string) (models.Reservation, error) {
	res, err := s.Ledger.GetByID(reservationID)
	if err != nil {
		return models.Reservation{}, err
	}
	if res.Status == models.ReservationPaid {
		utils.LogEvent(s.RequestID, "payment", "bpay_replay",
			fmt.Sprintf("reservation_id=%d tx=%s", res.ID, transactionID))
		return res, nil
	}

	res, err = s.Ledger.UpdateStatus(reservationID, models.ReservationPaid)
	if err != nil {
		return models.Reservation{}, err
	}

	if _, err := s.Payments.Create(models.Payment{
		ReservationID: res.ID,
		Amount:        res.TotalPrice,
		Method:        "bpay",
		TransactionID: transactionID,
	}); err != nil {
		// Status already moved; losing the payment row must not
		// unwind the reservation.
		utils.LogEvent(s.RequestID, "payment", "bpay_record_failed", err.Error())
	}

	utils.LogEvent(s.RequestID, "payment", "bpay_settled",
		fmt.Sprintf("reservation_id=%d amount=%s tx=%s", res.ID, utils.FormatMRU(res.TotalPrice), transactionID))
	return res, nil
}
