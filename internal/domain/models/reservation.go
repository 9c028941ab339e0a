package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationPaid      ReservationStatus = "paid"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation is one booking covering a non-empty set of seats on a
// trip. Multi-seat bookings are a single reservation so admission and
// cancellation act on the whole set at once. Reservations are never
// deleted; cancellation is a status change and the row stays as audit
// history.
type Reservation struct {
	ID             int64             `json:"id"`
	TripID         int64             `json:"tripId"`
	Seats          []string          `json:"seats"`
	PassengerName  string            `json:"passengerName"`
	PassengerEmail string            `json:"passengerEmail"`
	PassengerPhone string            `json:"passengerPhone"`
	Status         ReservationStatus `json:"status"`
	TotalPrice     int64             `json:"totalPrice"`
	ReceiptCode    string            `json:"receiptCode"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// Active reservations hold their seats against new bookings.
func (r Reservation) Active() bool {
	return ActiveReservationStatus(r.Status)
}

func ActiveReservationStatus(s ReservationStatus) bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationPaid:
		return true
	}
	return false
}

func ValidReservationStatus(s ReservationStatus) bool {
	return ActiveReservationStatus(s) || s == ReservationCancelled
}

// CanTransition encodes the allowed status moves:
// pending -> confirmed -> paid, pending -> paid, and any active
// status -> cancelled. Nothing leaves cancelled.
func CanTransition(from, to ReservationStatus) bool {
	if from == ReservationCancelled {
		return false
	}
	switch to {
	case ReservationConfirmed:
		return from == ReservationPending
	case ReservationPaid:
		return from == ReservationPending || from == ReservationConfirmed
	case ReservationCancelled:
		return ActiveReservationStatus(from)
	}
	return false
}
