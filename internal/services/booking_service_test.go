package services

import (
	"sync"
	"testing"
	"time"

	"sahelbus/internal/domain"
	"sahelbus/internal/domain/models"
	"sahelbus/internal/ledger"
	"sahelbus/internal/repositories"
	"sahelbus/internal/seat"
)

// bookingFixture wires a 2x2 minibus on one scheduled trip against the
// in-memory stores.
type bookingFixture struct {
	ref    *repositories.MemoryRef
	store  *ledger.MemoryStore
	svc    BookingService
	tripID int64
}

func newBookingFixture(t *testing.T) bookingFixture {
	t.Helper()

	ref := repositories.NewMemoryRef()
	layout, err := seat.NewLayout(2, 2)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	bus, err := ref.CreateBus(models.Bus{Name: "Hiace 1", Capacity: 4, Layout: layout, IsActive: true})
	if err != nil {
		t.Fatalf("bus: %v", err)
	}
	route, err := ref.CreateRoute(models.Route{From: "Nouakchott", To: "Rosso", Price: 1200, IsActive: true})
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	dep := time.Now().Add(24 * time.Hour)
	trip, err := ref.CreateTrip(models.Trip{BusID: bus.ID, RouteID: route.ID, DepartureTime: dep, ArrivalTime: dep.Add(3 * time.Hour), Price: 1200})
	if err != nil {
		t.Fatalf("trip: %v", err)
	}

	store := ledger.NewMemoryStore()
	svc := BookingService{
		Trips:  repositories.MemoryTrips{Ref: ref},
		Buses:  repositories.MemoryBuses{Ref: ref},
		Ledger: store,
		Locks:  NewTripLocks(),
	}
	return bookingFixture{ref: ref, store: store, svc: svc, tripID: trip.ID}
}

func (f bookingFixture) book(seats ...string) (models.Reservation, error) {
	return f.svc.AttemptBooking(BookingRequest{
		TripID:         f.tripID,
		Seats:          seats,
		PassengerName:  "Aminata Sow",
		PassengerEmail: "aminata@example.mr",
		TotalPrice:     int64(len(seats)) * 1200,
	})
}

func TestAttemptBookingFillsTheBus(t *testing.T) {
	f := newBookingFixture(t)

	first, err := f.book("1A", "1B")
	if err != nil {
		t.Fatalf("book 1A,1B: %v", err)
	}
	if first.Status != models.ReservationPending {
		t.Fatalf("status: got %s want pending", first.Status)
	}
	if n, _ := f.svc.AvailableSeats(f.tripID); n != 2 {
		t.Fatalf("available after first booking: got %d want 2", n)
	}

	if _, err := f.book("1B"); !domain.IsSeatAlreadyReserved(err) {
		t.Fatalf("1B again: expected seat conflict, got %v", err)
	}

	if _, err := f.book("2A", "2B"); err != nil {
		t.Fatalf("book 2A,2B: %v", err)
	}
	if n, _ := f.svc.AvailableSeats(f.tripID); n != 0 {
		t.Fatalf("available on full bus: got %d want 0", n)
	}

	// On a full bus a held seat still reports the conflict, not a
	// capacity problem.
	if _, err := f.book("1A"); !domain.IsSeatAlreadyReserved(err) {
		t.Fatalf("full bus, held seat: expected seat conflict, got %v", err)
	}
}

func TestAttemptBookingSeatValidation(t *testing.T) {
	f := newBookingFixture(t)

	if _, err := f.book(); !domain.IsInvalidSeat(err) {
		t.Fatalf("empty seat set: expected invalid seat, got %v", err)
	}
	if _, err := f.book("siege1"); !domain.IsInvalidSeat(err) {
		t.Fatalf("malformed label: expected invalid seat, got %v", err)
	}
	if _, err := f.book("1A", "1a"); !domain.IsInvalidSeat(err) {
		t.Fatalf("duplicate in request: expected invalid seat, got %v", err)
	}
	// Well-formed but outside the 2x2 grid.
	if _, err := f.book("3A"); !domain.IsInvalidSeat(err) {
		t.Fatalf("seat outside grid: expected invalid seat, got %v", err)
	}

	// A failed attempt admits nothing.
	if n, _ := f.svc.AvailableSeats(f.tripID); n != 4 {
		t.Fatalf("available after rejections: got %d want 4", n)
	}
}

func TestAttemptBookingNormalizesLabels(t *testing.T) {
	f := newBookingFixture(t)

	res, err := f.book(" 1a ", "2B")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if res.Seats[0] != "1A" || res.Seats[1] != "2B" {
		t.Fatalf("labels not canonical: %v", res.Seats)
	}
	if _, err := f.book("1A"); !domain.IsSeatAlreadyReserved(err) {
		t.Fatalf("canonical label must collide with normalized hold, got %v", err)
	}
}

func TestAttemptBookingTripNotBookableWinsOverBadSeat(t *testing.T) {
	f := newBookingFixture(t)

	if _, err := f.ref.UpdateTripStatus(f.tripID, models.TripDeparted); err != nil {
		t.Fatalf("depart trip: %v", err)
	}
	if _, err := f.book("not-a-seat"); !domain.IsTripNotBookable(err) {
		t.Fatalf("departed trip: expected trip-not-bookable, got %v", err)
	}
	if _, err := f.book("1A"); !domain.IsTripNotBookable(err) {
		t.Fatalf("departed trip, good seat: expected trip-not-bookable, got %v", err)
	}
}

func TestCancelReleasesSeatsForRebooking(t *testing.T) {
	f := newBookingFixture(t)

	res, err := f.book("1A", "1B")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := f.svc.Cancel(res.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if n, _ := f.svc.AvailableSeats(f.tripID); n != 4 {
		t.Fatalf("available after cancel: got %d want 4", n)
	}
	if _, err := f.book("1A"); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestProjectLayoutReflectsLedgerOnly(t *testing.T) {
	f := newBookingFixture(t)

	if _, err := f.book("1A", "2B"); err != nil {
		t.Fatalf("book: %v", err)
	}
	layout, err := f.svc.ProjectLayout(f.tripID)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	reserved := 0
	for r := 0; r < layout.Rows; r++ {
		for c := 0; c < layout.Columns; c++ {
			st, err := layout.At(r, c)
			if err != nil {
				t.Fatalf("at (%d,%d): %v", r, c, err)
			}
			switch st {
			case seat.StatusReserved:
				reserved++
			case seat.StatusAvailable:
			default:
				t.Fatalf("unexpected server-side status %q", st)
			}
		}
	}
	if reserved != 2 {
		t.Fatalf("reserved cells: got %d want 2", reserved)
	}
}

func TestAttemptBookingConcurrentSameSeat(t *testing.T) {
	f := newBookingFixture(t)

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.book("1A")
		}(i)
	}
	wg.Wait()

	won := 0
	for i, err := range errs {
		switch {
		case err == nil:
			won++
		case domain.IsSeatAlreadyReserved(err):
		default:
			t.Fatalf("attempt %d: unexpected error %v", i, err)
		}
	}
	if won != 1 {
		t.Fatalf("seat 1A admitted %d times, want exactly 1", won)
	}
	if n, _ := f.svc.AvailableSeats(f.tripID); n != 3 {
		t.Fatalf("available after storm: got %d want 3", n)
	}
}

func TestAttemptBookingConcurrentNeverOverbooks(t *testing.T) {
	f := newBookingFixture(t)

	labels := []string{"1A", "1B", "2A", "2B"}
	var wg sync.WaitGroup
	for round := 0; round < 8; round++ {
		for _, label := range labels {
			wg.Add(1)
			go func(label string) {
				defer wg.Done()
				_, _ = f.book(label)
			}(label)
		}
	}
	wg.Wait()

	rows, err := f.store.ListByTrip(f.tripID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	held := map[string]int{}
	for _, r := range rows {
		if !r.Active() {
			continue
		}
		for _, s := range r.Seats {
			held[s]++
		}
	}
	for label, n := range held {
		if n != 1 {
			t.Fatalf("seat %s held %d times", label, n)
		}
	}
	if len(held) != 4 {
		t.Fatalf("held seats: got %d want 4", len(held))
	}
	if n, _ := f.svc.AvailableSeats(f.tripID); n != 0 {
		t.Fatalf("available: got %d want 0", n)
	}
}

// drifted ledger views for the checks that guard against inconsistent
// state: per-seat lookups see nothing held while the trip listing does.
type driftedLedger struct {
	ledger.Store
	rows []models.Reservation
}

func (s driftedLedger) ListByTrip(int64) ([]models.Reservation, error) { return s.rows, nil }

func (s driftedLedger) FindActiveByTripAndSeat(int64, string) (models.Reservation, bool, error) {
	return models.Reservation{}, false, nil
}

func TestAttemptBookingInsufficientCapacity(t *testing.T) {
	f := newBookingFixture(t)
	f.svc.Ledger = driftedLedger{rows: []models.Reservation{
		{ID: 1, TripID: f.tripID, Seats: []string{"1A", "1B", "2A"}, Status: models.ReservationPaid},
	}}

	_, err := f.svc.AttemptBooking(BookingRequest{
		TripID:         f.tripID,
		Seats:          []string{"2A", "2B"},
		PassengerName:  "Oumar Ba",
		PassengerEmail: "oumar@example.mr",
	})
	if !domain.IsInsufficientCapacity(err) {
		t.Fatalf("expected insufficient capacity, got %v", err)
	}
}

func TestAvailableSeatsDetectsCorruption(t *testing.T) {
	f := newBookingFixture(t)
	f.svc.Ledger = driftedLedger{rows: []models.Reservation{
		{ID: 1, TripID: f.tripID, Seats: []string{"1A", "1B", "2A"}, Status: models.ReservationPaid},
		{ID: 2, TripID: f.tripID, Seats: []string{"2B", "1A", "1B"}, Status: models.ReservationPending},
	}}

	if _, err := f.svc.AvailableSeats(f.tripID); !domain.IsInventoryCorruption(err) {
		t.Fatalf("expected inventory corruption, got %v", err)
	}
}
