package ledger

import (
	"sort"
	"strings"
	"sync"
	"time"

	"sahelbus/internal/domain"
	"sahelbus/internal/domain/models"
)

// MemoryStore keeps the ledger in process memory behind a single
// RWMutex. Reads hand out copies, so a snapshot taken by ListByTrip
// never shows a half-written multi-seat reservation.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   []models.Reservation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Create(d Draft) (models.Reservation, error) {
	if len(d.Seats) == 0 {
		return models.Reservation{}, domain.ValidationError{Field: "seats", Msg: "empty seat set"}
	}
	status := d.Status
	if status == "" {
		status = models.ReservationPending
	}
	if !models.ActiveReservationStatus(status) {
		return models.Reservation{}, domain.ValidationError{Field: "status", Msg: "new reservations must be active"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var conflicts []string
	for _, label := range d.Seats {
		if _, ok := s.activeHolderLocked(d.TripID, label); ok {
			conflicts = append(conflicts, label)
		}
	}
	if len(conflicts) > 0 {
		return models.Reservation{}, domain.SeatAlreadyReservedError{TripID: d.TripID, Seats: conflicts}
	}

	res := models.Reservation{
		ID:             s.nextID,
		TripID:         d.TripID,
		Seats:          append([]string(nil), d.Seats...),
		PassengerName:  d.PassengerName,
		PassengerEmail: d.PassengerEmail,
		PassengerPhone: d.PassengerPhone,
		Status:         status,
		TotalPrice:     d.TotalPrice,
		ReceiptCode:    d.ReceiptCode,
		CreatedAt:      time.Now(),
	}
	s.nextID++
	s.rows = append(s.rows, res)
	return copyReservation(res), nil
}

func (s *MemoryStore) GetByID(id int64) (models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rows {
		if r.ID == id {
			return copyReservation(r), nil
		}
	}
	return models.Reservation{}, domain.NotFoundError{Resource: "reservation"}
}

func (s *MemoryStore) GetByReceiptCode(code string) (models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rows {
		if r.ReceiptCode != "" && r.ReceiptCode == code {
			return copyReservation(r), nil
		}
	}
	return models.Reservation{}, domain.NotFoundError{Resource: "reservation"}
}

func (s *MemoryStore) FindActiveByTripAndSeat(tripID int64, seatLabel string) (models.Reservation, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.activeHolderLocked(tripID, seatLabel); ok {
		return copyReservation(r), true, nil
	}
	return models.Reservation{}, false, nil
}

func (s *MemoryStore) ListByTrip(tripID int64) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Reservation{}
	for _, r := range s.rows {
		if r.TripID == tripID {
			out = append(out, copyReservation(r))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) ListByPassengerEmail(email string) ([]models.Reservation, error) {
	needle := strings.ToLower(strings.TrimSpace(email))
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Reservation{}
	for _, r := range s.rows {
		if strings.ToLower(r.PassengerEmail) == needle {
			out = append(out, copyReservation(r))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) UpdateStatus(id int64, to models.ReservationStatus) (models.Reservation, error) {
	if !models.ValidReservationStatus(to) {
		return models.Reservation{}, domain.ValidationError{Field: "status", Msg: "unknown status " + string(to)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID != id {
			continue
		}
		from := s.rows[i].Status
		if !models.CanTransition(from, to) {
			return models.Reservation{}, domain.InvalidTransitionError{From: string(from), To: string(to)}
		}
		s.rows[i].Status = to
		return copyReservation(s.rows[i]), nil
	}
	return models.Reservation{}, domain.NotFoundError{Resource: "reservation"}
}

func (s *MemoryStore) activeHolderLocked(tripID int64, seatLabel string) (models.Reservation, bool) {
	for _, r := range s.rows {
		if r.TripID != tripID || !r.Active() {
			continue
		}
		for _, seat := range r.Seats {
			if seat == seatLabel {
				return r, true
			}
		}
	}
	return models.Reservation{}, false
}

func copyReservation(r models.Reservation) models.Reservation {
	r.Seats = append([]string(nil), r.Seats...)
	return r
}
