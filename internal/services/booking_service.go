package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"sahelbus/internal/domain"
	"sahelbus/internal/domain/models"
	"sahelbus/internal/ledger"
	"sahelbus/internal/seat"
	"sahelbus/internal/utils"
)

// BookingService is the admission controller: the only path that
// creates reservations, and the component that enforces the
// one-active-reservation-per-seat-per-trip invariant.
type BookingService struct {
	Trips     TripStore
	Buses     BusStore
	Ledger    ledger.Store
	Locks     *TripLocks
	Notifier  Notifier
	RequestID string
}

// BookingRequest is one admission attempt. Paid marks bookings that
// arrive through a successful payment callback and are created
// directly in the paid state.
type BookingRequest struct {
	TripID         int64
	Seats          []string
	PassengerName  string
	PassengerEmail string
	PassengerPhone string
	TotalPrice     int64
	Paid           bool
}

// AttemptBooking runs the admission checks in precedence order (trip
// bookable, seats valid, seats free, capacity) and, when they pass,
// creates the reservation. Conflict check and create are one unit:
// no other admission for the same trip can interleave between them.
func (s BookingService) AttemptBooking(req BookingRequest) (models.Reservation, error) {
	if strings.TrimSpace(req.PassengerName) == "" {
		return models.Reservation{}, domain.ValidationError{Field: "passengerName", Msg: "nom du passager requis"}
	}
	if strings.TrimSpace(req.PassengerEmail) == "" {
		return models.Reservation{}, domain.ValidationError{Field: "passengerEmail", Msg: "email du passager requis"}
	}

	release := s.Locks.Acquire(req.TripID)
	defer release()

	// Check order is fixed: trip bookable, then seat validity, then
	// conflicts, then capacity. A departed trip reports "not bookable"
	// even when the request also names a bad seat.
	trip, err := s.Trips.GetByID(req.TripID)
	if err != nil {
		return models.Reservation{}, err
	}
	if trip.Status != models.TripScheduled {
		return models.Reservation{}, domain.TripNotBookableError{TripID: trip.ID, Status: string(trip.Status)}
	}

	seats, err := normalizeSeatSet(req.Seats)
	if err != nil {
		return models.Reservation{}, err
	}

	bus, err := s.Buses.GetByID(trip.BusID)
	if err != nil {
		return models.Reservation{}, err
	}
	for _, label := range seats {
		row, column, err := seat.Decode(label)
		if err != nil {
			return models.Reservation{}, domain.InvalidSeatError{Label: label, Err: err}
		}
		if !bus.Layout.Contains(row, column) {
			return models.Reservation{}, domain.InvalidSeatError{Label: label, Msg: "outside the bus grid"}
		}
	}

	// Re-check against the ledger, never a client-side projection.
	var conflicts []string
	for _, label := range seats {
		if _, held, err := s.Ledger.FindActiveByTripAndSeat(trip.ID, label); err != nil {
			return models.Reservation{}, err
		} else if held {
			conflicts = append(conflicts, label)
		}
	}
	if len(conflicts) > 0 {
		return models.Reservation{}, domain.SeatAlreadyReservedError{TripID: trip.ID, Seats: conflicts}
	}

	available, err := s.availableSeats(trip.ID, bus)
	if err != nil {
		return models.Reservation{}, err
	}
	if len(seats) > available {
		return models.Reservation{}, domain.InsufficientCapacityError{TripID: trip.ID, Requested: len(seats), Available: available}
	}

	status := models.ReservationPending
	if req.Paid {
		status = models.ReservationPaid
	}
	res, err := s.Ledger.Create(ledger.Draft{
		TripID:         trip.ID,
		Seats:          seats,
		PassengerName:  utils.NormalizeSpace(req.PassengerName),
		PassengerEmail: strings.ToLower(strings.TrimSpace(req.PassengerEmail)),
		PassengerPhone: strings.TrimSpace(req.PassengerPhone),
		Status:         status,
		TotalPrice:     req.TotalPrice,
		ReceiptCode:    uuid.NewString(),
	})
	if err != nil {
		return models.Reservation{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "admitted",
		fmt.Sprintf("reservation_id=%d trip_id=%d seats=%s", res.ID, trip.ID, strings.Join(seats, ",")))

	if s.Notifier != nil {
		s.Notifier.BookingCreated(res)
	}
	return res, nil
}

// ProjectLayout overlays the trip's active reservations onto the bus
// baseline. Never returns a "selected" state: that overlay belongs to
// the browsing client.
func (s BookingService) ProjectLayout(tripID int64) (seat.Layout, error) {
	trip, err := s.Trips.GetByID(tripID)
	if err != nil {
		return seat.Layout{}, err
	}
	bus, err := s.Buses.GetByID(trip.BusID)
	if err != nil {
		return seat.Layout{}, err
	}
	labels, err := s.activeSeatLabels(tripID)
	if err != nil {
		return seat.Layout{}, err
	}
	return seat.Project(tripID, bus.Layout, labels)
}

// AvailableSeats derives the free-seat count from the ledger. There
// is no stored counter to drift out of sync.
func (s BookingService) AvailableSeats(tripID int64) (int, error) {
	trip, err := s.Trips.GetByID(tripID)
	if err != nil {
		return 0, err
	}
	bus, err := s.Buses.GetByID(trip.BusID)
	if err != nil {
		return 0, err
	}
	return s.availableSeats(tripID, bus)
}

func (s BookingService) GetReservation(id int64) (models.Reservation, error) {
	return s.Ledger.GetByID(id)
}

// UpdateStatus applies one transition from the reservation lifecycle
// table. Cancelling releases the seats for re-booking.
func (s BookingService) UpdateStatus(id int64, to models.ReservationStatus) (models.Reservation, error) {
	res, err := s.Ledger.UpdateStatus(id, to)
	if err != nil {
		return models.Reservation{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "status",
		fmt.Sprintf("reservation_id=%d status=%s", res.ID, res.Status))
	return res, nil
}

func (s BookingService) Cancel(id int64) (models.Reservation, error) {
	return s.UpdateStatus(id, models.ReservationCancelled)
}

// ReservationFilter narrows ListReservations; zero values mean "any".
type ReservationFilter struct {
	TripID         int64
	PassengerEmail string
}

func (s BookingService) ListReservations(f ReservationFilter) ([]models.Reservation, error) {
	switch {
	case f.TripID != 0 && f.PassengerEmail != "":
		rows, err := s.Ledger.ListByTrip(f.TripID)
		if err != nil {
			return nil, err
		}
		needle := strings.ToLower(strings.TrimSpace(f.PassengerEmail))
		out := []models.Reservation{}
		for _, r := range rows {
			if strings.ToLower(r.PassengerEmail) == needle {
				out = append(out, r)
			}
		}
		return out, nil
	case f.TripID != 0:
		return s.Ledger.ListByTrip(f.TripID)
	case f.PassengerEmail != "":
		return s.Ledger.ListByPassengerEmail(f.PassengerEmail)
	default:
		return nil, domain.ValidationError{Field: "filter", Msg: "tripId or email required"}
	}
}

func (s BookingService) availableSeats(tripID int64, bus models.Bus) (int, error) {
	labels, err := s.activeSeatLabels(tripID)
	if err != nil {
		return 0, err
	}
	available := bus.Capacity - len(labels)
	if available < 0 {
		// More active holds than the bus has seats: the ledger is
		// corrupt, not merely full.
		return 0, domain.InventoryCorruptionError{
			TripID: tripID,
			Err:    fmt.Errorf("%d active seats on a %d-seat bus", len(labels), bus.Capacity),
		}
	}
	return available, nil
}

func (s BookingService) activeSeatLabels(tripID int64) ([]string, error) {
	rows, err := s.Ledger.ListByTrip(tripID)
	if err != nil {
		return nil, err
	}
	labels := []string{}
	for _, r := range rows {
		if !r.Active() {
			continue
		}
		labels = append(labels, r.Seats...)
	}
	return labels, nil
}

// normalizeSeatSet canonicalizes labels and rejects empties and
// duplicates within one request.
func normalizeSeatSet(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, domain.InvalidSeatError{Msg: "seat set is empty"}
	}
	seen := map[string]bool{}
	out := make([]string, 0, len(raw))
	for _, label := range raw {
		canonical, err := seat.Normalize(label)
		if err != nil {
			return nil, domain.InvalidSeatError{Label: label, Err: err}
		}
		if seen[canonical] {
			return nil, domain.InvalidSeatError{Label: canonical, Msg: "duplicated in request"}
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	return out, nil
}
