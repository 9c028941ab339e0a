package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"sahelbus/internal/domain"
	"sahelbus/internal/domain/models"
)

func TestTripRepoSearchAppliesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	dep := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	mock.ExpectQuery("FROM trips t").
		WithArgs("Nouakchott", "Rosso", "2026-09-01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "bus_id", "route_id", "departure_time", "arrival_time", "price", "status"}).
			AddRow(3, 1, 2, dep, dep.Add(3*time.Hour), 1200, "scheduled"))

	repo := TripRepo{DB: db}
	trips, err := repo.Search("Nouakchott", "Rosso", dep)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(trips) != 1 {
		t.Fatalf("results: got %d want 1", len(trips))
	}
	if trips[0].ID != 3 || trips[0].Status != models.TripScheduled {
		t.Fatalf("trip row: %+v", trips[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bus_id", "route_id", "departure_time", "arrival_time", "price", "status"}))

	repo := TripRepo{DB: db}
	if _, err := repo.GetByID(42); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTripRepoUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := TripRepo{DB: db}

	if _, err := repo.UpdateStatus(3, "flying"); !domain.IsValidation(err) {
		t.Fatalf("unknown status: expected validation error, got %v", err)
	}

	mock.ExpectExec("UPDATE trips SET status").WithArgs("departed", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if _, err := repo.UpdateStatus(3, models.TripDeparted); !domain.IsNotFound(err) {
		t.Fatalf("missing trip: expected not found, got %v", err)
	}

	dep := time.Now()
	mock.ExpectExec("UPDATE trips SET status").WithArgs("departed", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bus_id", "route_id", "departure_time", "arrival_time", "price", "status"}).
			AddRow(3, 1, 2, dep, dep.Add(time.Hour), 1200, "departed"))

	trip, err := repo.UpdateStatus(3, models.TripDeparted)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if trip.Status != models.TripDeparted {
		t.Fatalf("status: got %s", trip.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
