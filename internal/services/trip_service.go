package services

import (
	"strings"
	"time"

	"sahelbus/internal/domain"
	"sahelbus/internal/domain/models"
	"sahelbus/internal/ledger"
	"sahelbus/internal/utils"
)

// TripService serves trip search and the admin reference-data
// operations. It reads the ledger only to derive free-seat counts.
type TripService struct {
	Trips  TripStore
	Buses  BusStore
	Routes RouteStore
	Ledger ledger.Store
}

// TripDetail is a trip joined with its bus and route plus the derived
// availability, the shape the search and trip pages consume.
type TripDetail struct {
	models.Trip
	AvailableSeats int `json:"availableSeats"`
}

// Search returns scheduled trips matching origin/destination/date.
func (s TripService) Search(from, to, dateStr string) ([]TripDetail, error) {
	var date time.Time
	if strings.TrimSpace(dateStr) != "" {
		parsed, err := utils.ParseDate(dateStr)
		if err != nil {
			return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
		}
		date = parsed
	}

	trips, err := s.Trips.Search(from, to, date)
	if err != nil {
		return nil, err
	}
	out := make([]TripDetail, 0, len(trips))
	for _, t := range trips {
		detail, err := s.detail(t)
		if err != nil {
			return nil, err
		}
		out = append(out, detail)
	}
	return out, nil
}

func (s TripService) Get(id int64) (TripDetail, error) {
	t, err := s.Trips.GetByID(id)
	if err != nil {
		return TripDetail{}, err
	}
	return s.detail(t)
}

func (s TripService) detail(t models.Trip) (TripDetail, error) {
	bus, err := s.Buses.GetByID(t.BusID)
	if err != nil {
		return TripDetail{}, err
	}
	route, err := s.Routes.GetByID(t.RouteID)
	if err != nil {
		return TripDetail{}, err
	}
	t.Bus = &bus
	t.Route = &route

	held := 0
	reservations, err := s.Ledger.ListByTrip(t.ID)
	if err != nil {
		return TripDetail{}, err
	}
	for _, r := range reservations {
		if r.Active() {
			held += len(r.Seats)
		}
	}
	available := bus.Capacity - held
	if available < 0 {
		available = 0
	}
	return TripDetail{Trip: t, AvailableSeats: available}, nil
}

// CreateBus registers a vehicle. The declared capacity must match the
// grid, a full rectangle with no structurally absent cells.
func (s TripService) CreateBus(b models.Bus) (models.Bus, error) {
	if strings.TrimSpace(b.Name) == "" {
		return models.Bus{}, domain.ValidationError{Field: "name", Msg: "nom du bus requis"}
	}
	if b.Capacity != b.Layout.Rows*b.Layout.Columns {
		return models.Bus{}, domain.ValidationError{Field: "capacity", Msg: "capacity must equal rows*columns"}
	}
	return s.Buses.Create(b)
}

func (s TripService) CreateRoute(r models.Route) (models.Route, error) {
	if strings.TrimSpace(r.From) == "" || strings.TrimSpace(r.To) == "" {
		return models.Route{}, domain.ValidationError{Field: "route", Msg: "origine et destination requises"}
	}
	if r.Price < 0 {
		return models.Route{}, domain.ValidationError{Field: "price", Msg: "prix invalide"}
	}
	return s.Routes.Create(r)
}

func (s TripService) CreateTrip(t models.Trip) (models.Trip, error) {
	if _, err := s.Buses.GetByID(t.BusID); err != nil {
		return models.Trip{}, err
	}
	if _, err := s.Routes.GetByID(t.RouteID); err != nil {
		return models.Trip{}, err
	}
	if !t.ArrivalTime.After(t.DepartureTime) {
		return models.Trip{}, domain.ValidationError{Field: "arrivalTime", Msg: "arrival must be after departure"}
	}
	return s.Trips.Create(t)
}

func (s TripService) UpdateTripStatus(id int64, status models.TripStatus) (models.Trip, error) {
	return s.Trips.UpdateStatus(id, status)
}

func (s TripService) ListBuses() ([]models.Bus, error)    { return s.Buses.List() }
func (s TripService) ListRoutes() ([]models.Route, error) { return s.Routes.List() }
