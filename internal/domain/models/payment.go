package models

import "time"

// Payment records one settled BPay transaction against a reservation.
// The gateway is mocked: callbacks always report success, but the row
// is kept so receipts and admin views can show how a booking was paid.
type Payment struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservationId"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"method"` // cash / card / bpay
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"createdAt"`
}
