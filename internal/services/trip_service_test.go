package services

import (
	"testing"
	"time"

	"sahelbus/internal/domain"
	"sahelbus/internal/domain/models"
	"sahelbus/internal/ledger"
	"sahelbus/internal/repositories"
	"sahelbus/internal/seat"
)

func newTripService(t *testing.T) (TripService, *repositories.MemoryRef, *ledger.MemoryStore) {
	t.Helper()
	ref := repositories.NewMemoryRef()
	store := ledger.NewMemoryStore()
	svc := TripService{
		Trips:  repositories.MemoryTrips{Ref: ref},
		Buses:  repositories.MemoryBuses{Ref: ref},
		Routes: repositories.MemoryRoutes{Ref: ref},
		Ledger: store,
	}
	return svc, ref, store
}

func TestCreateBusCapacityMustMatchGrid(t *testing.T) {
	svc, _, _ := newTripService(t)

	layout, err := seat.NewLayout(7, 2)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if _, err := svc.CreateBus(models.Bus{Name: "Hiace", Capacity: 20, Layout: layout}); !domain.IsValidation(err) {
		t.Fatalf("capacity 20 on a 14-cell grid: expected validation error, got %v", err)
	}
	if _, err := svc.CreateBus(models.Bus{Name: "Hiace", Capacity: 14, Layout: layout}); err != nil {
		t.Fatalf("matching capacity refused: %v", err)
	}
}

func TestSearchDerivesAvailability(t *testing.T) {
	svc, ref, store := newTripService(t)

	layout, _ := seat.NewLayout(2, 2)
	bus, _ := ref.CreateBus(models.Bus{Name: "Hiace", Capacity: 4, Layout: layout})
	route, _ := ref.CreateRoute(models.Route{From: "Nouakchott", To: "Rosso", Price: 1200})
	dep := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	trip, _ := ref.CreateTrip(models.Trip{BusID: bus.ID, RouteID: route.ID, DepartureTime: dep, ArrivalTime: dep.Add(3 * time.Hour)})

	if _, err := store.Create(ledger.Draft{TripID: trip.ID, Seats: []string{"1A", "1B", "2A"}, PassengerName: "X", PassengerEmail: "x@example.mr", ReceiptCode: "c1"}); err != nil {
		t.Fatalf("seed reservation: %v", err)
	}

	results, err := svc.Search("nouakchott", "Rosso", "2026-09-01")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results: got %d want 1", len(results))
	}
	got := results[0]
	if got.AvailableSeats != 1 {
		t.Fatalf("available: got %d want 1", got.AvailableSeats)
	}
	if got.Route == nil || got.Route.To != "Rosso" {
		t.Fatalf("route join missing: %+v", got.Route)
	}
	if got.Bus == nil || got.Bus.Capacity != 4 {
		t.Fatalf("bus join missing: %+v", got.Bus)
	}

	// Other date, no match.
	none, err := svc.Search("Nouakchott", "Rosso", "2026-09-02")
	if err != nil {
		t.Fatalf("search other date: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no trips on 2026-09-02, got %d", len(none))
	}

	if _, err := svc.Search("", "", "01/09/2026"); !domain.IsValidation(err) {
		t.Fatalf("bad date format: expected validation error, got %v", err)
	}
}

func TestCreateTripValidations(t *testing.T) {
	svc, ref, _ := newTripService(t)

	layout, _ := seat.NewLayout(2, 2)
	bus, _ := ref.CreateBus(models.Bus{Name: "Hiace", Capacity: 4, Layout: layout})
	route, _ := ref.CreateRoute(models.Route{From: "Nouakchott", To: "Atar", Price: 2000})
	dep := time.Now().Add(24 * time.Hour)

	if _, err := svc.CreateTrip(models.Trip{BusID: 99, RouteID: route.ID, DepartureTime: dep, ArrivalTime: dep.Add(time.Hour)}); !domain.IsNotFound(err) {
		t.Fatalf("unknown bus: expected not found, got %v", err)
	}
	if _, err := svc.CreateTrip(models.Trip{BusID: bus.ID, RouteID: route.ID, DepartureTime: dep, ArrivalTime: dep}); !domain.IsValidation(err) {
		t.Fatalf("arrival not after departure: expected validation error, got %v", err)
	}
	trip, err := svc.CreateTrip(models.Trip{BusID: bus.ID, RouteID: route.ID, DepartureTime: dep, ArrivalTime: dep.Add(5 * time.Hour)})
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	if trip.Status != models.TripScheduled {
		t.Fatalf("default status: got %s want scheduled", trip.Status)
	}
}

func TestSeedDemoIsConsistent(t *testing.T) {
	ref := repositories.NewMemoryRef()
	if err := repositories.SeedDemo(ref); err != nil {
		t.Fatalf("seed: %v", err)
	}

	buses, err := ref.ListBuses()
	if err != nil {
		t.Fatalf("list buses: %v", err)
	}
	if len(buses) == 0 {
		t.Fatalf("seed created no buses")
	}
	for _, b := range buses {
		if b.Capacity != b.Layout.Rows*b.Layout.Columns {
			t.Fatalf("bus %q: capacity %d does not match %dx%d grid", b.Name, b.Capacity, b.Layout.Rows, b.Layout.Columns)
		}
	}

	trips, err := ref.SearchTrips("", "", time.Time{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(trips) == 0 {
		t.Fatalf("seed created no trips")
	}
	for _, trip := range trips {
		if trip.Status != models.TripScheduled {
			t.Fatalf("trip %d seeded with status %s", trip.ID, trip.Status)
		}
	}
}
