package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"sahelbus/internal/domain"
	"sahelbus/internal/domain/models"
)

// MemoryRef holds buses, routes and trips in memory. It backs demo
// mode (the service runs without a database, seeded like the original
// deployment) and the service tests.
type MemoryRef struct {
	mu     sync.RWMutex
	nextID int64
	buses  map[int64]models.Bus
	routes map[int64]models.Route
	trips  map[int64]models.Trip
}

func NewMemoryRef() *MemoryRef {
	return &MemoryRef{
		nextID: 1,
		buses:  map[int64]models.Bus{},
		routes: map[int64]models.Route{},
		trips:  map[int64]models.Trip{},
	}
}

func (m *MemoryRef) id() int64 {
	v := m.nextID
	m.nextID++
	return v
}

func (m *MemoryRef) CreateBus(b models.Bus) (models.Bus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.id()
	b.Amenities = append([]string(nil), b.Amenities...)
	m.buses[b.ID] = b
	return b, nil
}

func (m *MemoryRef) GetBus(id int64) (models.Bus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.buses[id]
	if !ok {
		return models.Bus{}, domain.NotFoundError{Resource: "bus"}
	}
	return b, nil
}

func (m *MemoryRef) ListBuses() ([]models.Bus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Bus, 0, len(m.buses))
	for _, b := range m.buses {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryRef) CreateRoute(r models.Route) (models.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.id()
	m.routes[r.ID] = r
	return r, nil
}

func (m *MemoryRef) GetRoute(id int64) (models.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.routes[id]
	if !ok {
		return models.Route{}, domain.NotFoundError{Resource: "route"}
	}
	return r, nil
}

func (m *MemoryRef) ListRoutes() ([]models.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Route, 0, len(m.routes))
	for _, r := range m.routes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryRef) CreateTrip(t models.Trip) (models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.buses[t.BusID]; !ok {
		return models.Trip{}, domain.NotFoundError{Resource: "bus"}
	}
	if _, ok := m.routes[t.RouteID]; !ok {
		return models.Trip{}, domain.NotFoundError{Resource: "route"}
	}
	t.ID = m.id()
	t.Bus, t.Route = nil, nil
	if t.Status == "" {
		t.Status = models.TripScheduled
	}
	m.trips[t.ID] = t
	return t, nil
}

func (m *MemoryRef) GetTrip(id int64) (models.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trips[id]
	if !ok {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	return t, nil
}

// SearchTrips filters by origin, destination and departure date, all
// optional. Matching is case-insensitive on city names.
func (m *MemoryRef) SearchTrips(from, to string, date time.Time) ([]models.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))

	out := []models.Trip{}
	for _, t := range m.trips {
		route, ok := m.routes[t.RouteID]
		if !ok {
			continue
		}
		if from != "" && strings.ToLower(route.From) != from {
			continue
		}
		if to != "" && strings.ToLower(route.To) != to {
			continue
		}
		if !date.IsZero() {
			y1, m1, d1 := t.DepartureTime.Date()
			y2, m2, d2 := date.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartureTime.Before(out[j].DepartureTime) })
	return out, nil
}

func (m *MemoryRef) UpdateTripStatus(id int64, status models.TripStatus) (models.Trip, error) {
	if !models.ValidTripStatus(status) {
		return models.Trip{}, domain.ValidationError{Field: "status", Msg: "unknown trip status " + string(status)}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	t.Status = status
	m.trips[id] = t
	return t, nil
}

// Views over MemoryRef with the method names the service interfaces
// expect. MemoryRef keeps one id sequence across the three resources,
// so the views share it rather than owning their own maps.

type MemoryBuses struct{ Ref *MemoryRef }

func (v MemoryBuses) Create(b models.Bus) (models.Bus, error) { return v.Ref.CreateBus(b) }
func (v MemoryBuses) GetByID(id int64) (models.Bus, error)    { return v.Ref.GetBus(id) }
func (v MemoryBuses) List() ([]models.Bus, error)             { return v.Ref.ListBuses() }

type MemoryRoutes struct{ Ref *MemoryRef }

func (v MemoryRoutes) Create(r models.Route) (models.Route, error) { return v.Ref.CreateRoute(r) }
func (v MemoryRoutes) GetByID(id int64) (models.Route, error)      { return v.Ref.GetRoute(id) }
func (v MemoryRoutes) List() ([]models.Route, error)               { return v.Ref.ListRoutes() }

type MemoryTrips struct{ Ref *MemoryRef }

func (v MemoryTrips) Create(t models.Trip) (models.Trip, error)  { return v.Ref.CreateTrip(t) }
func (v MemoryTrips) GetByID(id int64) (models.Trip, error)      { return v.Ref.GetTrip(id) }
func (v MemoryTrips) Search(from, to string, date time.Time) ([]models.Trip, error) {
	return v.Ref.SearchTrips(from, to, date)
}
func (v MemoryTrips) UpdateStatus(id int64, status models.TripStatus) (models.Trip, error) {
	return v.Ref.UpdateTripStatus(id, status)
}

// MemoryUsers is the in-memory user account store for demo mode.
type MemoryUsers struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]models.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{nextID: 1, users: map[int64]models.User{}}
}

func (m *MemoryUsers) Create(u models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return models.User{}, domain.ValidationError{Field: "email", Msg: "email already registered"}
		}
	}
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now()
	m.users[u.ID] = u
	return u, nil
}

func (m *MemoryUsers) GetByEmail(email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, domain.NotFoundError{Resource: "user"}
}

// MemoryPayments records settled payments in demo mode.
type MemoryPayments struct {
	mu     sync.Mutex
	nextID int64
	rows   []models.Payment
}

func NewMemoryPayments() *MemoryPayments {
	return &MemoryPayments{nextID: 1}
}

func (m *MemoryPayments) Create(p models.Payment) (models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextID
	m.nextID++
	p.CreatedAt = time.Now()
	m.rows = append(m.rows, p)
	return p, nil
}

func (m *MemoryPayments) ListByReservation(reservationID int64) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Payment{}
	for _, p := range m.rows {
		if p.ReservationID == reservationID {
			out = append(out, p)
		}
	}
	return out, nil
}
