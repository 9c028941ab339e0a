package services

import (
	"time"

	"sahelbus/internal/domain/models"
)

// Reference data lookups consumed by the services. Satisfied by both
// the MySQL repositories and the in-memory demo stores.

type TripStore interface {
	Create(t models.Trip) (models.Trip, error)
	GetByID(id int64) (models.Trip, error)
	Search(from, to string, date time.Time) ([]models.Trip, error)
	UpdateStatus(id int64, status models.TripStatus) (models.Trip, error)
}

type BusStore interface {
	Create(b models.Bus) (models.Bus, error)
	GetByID(id int64) (models.Bus, error)
	List() ([]models.Bus, error)
}

type RouteStore interface {
	Create(r models.Route) (models.Route, error)
	GetByID(id int64) (models.Route, error)
	List() ([]models.Route, error)
}

type UserStore interface {
	Create(u models.User) (models.User, error)
	GetByEmail(email string) (models.User, error)
}

type PaymentStore interface {
	Create(p models.Payment) (models.Payment, error)
	ListByReservation(reservationID int64) ([]models.Payment, error)
}

// Notifier is the hook fired after a successful booking. The receipt
// mail/SMS pipeline lives outside this service.
type Notifier interface {
	BookingCreated(res models.Reservation)
}
