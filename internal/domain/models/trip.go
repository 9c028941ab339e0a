package models

import "time"

type TripStatus string

const (
	TripScheduled TripStatus = "scheduled"
	TripDeparted  TripStatus = "departed"
	TripArrived   TripStatus = "arrived"
	TripCancelled TripStatus = "cancelled"
)

// Trip is one scheduled departure of a bus on a route. There is no
// stored seat counter: available seats are always derived from the
// reservation ledger so the two can never drift apart.
type Trip struct {
	ID            int64      `json:"id"`
	BusID         int64      `json:"busId"`
	RouteID       int64      `json:"routeId"`
	DepartureTime time.Time  `json:"departureTime"`
	ArrivalTime   time.Time  `json:"arrivalTime"`
	Price         int64      `json:"price"`
	Status        TripStatus `json:"status"`

	// Optional detail joins for API responses.
	Bus   *Bus   `json:"bus,omitempty"`
	Route *Route `json:"route,omitempty"`
}

// ValidTripStatus reports whether s is a known trip status.
func ValidTripStatus(s TripStatus) bool {
	switch s {
	case TripScheduled, TripDeparted, TripArrived, TripCancelled:
		return true
	}
	return false
}
