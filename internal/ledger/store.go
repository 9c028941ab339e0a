// Package ledger is the authoritative record of reservations. All
// writes go through the booking service; the store implementations
// still refuse to create a second active reservation for the same
// (trip, seat) pair, so there is no path around the invariant.
package ledger

import (
	"sahelbus/internal/domain/models"
)

// Draft carries the fields of a reservation before the store assigns
// id and creation time. Status must be pending, or paid when the
// booking arrives through a successful payment callback.
type Draft struct {
	TripID         int64
	Seats          []string
	PassengerName  string
	PassengerEmail string
	PassengerPhone string
	Status         models.ReservationStatus
	TotalPrice     int64
	ReceiptCode    string
}

// Store is the reservation ledger. Implementations: MemoryStore for
// tests and demo mode, MySQLStore for deployments.
type Store interface {
	// Create appends a reservation. Returns SeatAlreadyReservedError
	// when any seat in the draft is already held by an active
	// reservation on the same trip.
	Create(d Draft) (models.Reservation, error)

	GetByID(id int64) (models.Reservation, error)
	GetByReceiptCode(code string) (models.Reservation, error)

	// FindActiveByTripAndSeat reports the active reservation holding
	// seatLabel on the trip, if any. Active = pending|confirmed|paid.
	FindActiveByTripAndSeat(tripID int64, seatLabel string) (models.Reservation, bool, error)

	// ListByTrip returns all reservations for the trip, cancelled
	// included, ordered by creation time ascending.
	ListByTrip(tripID int64) ([]models.Reservation, error)

	ListByPassengerEmail(email string) ([]models.Reservation, error)

	// UpdateStatus applies one transition from the table in
	// models.CanTransition, failing with InvalidTransitionError
	// otherwise. Cancelling releases the seats.
	UpdateStatus(id int64, to models.ReservationStatus) (models.Reservation, error)
}
