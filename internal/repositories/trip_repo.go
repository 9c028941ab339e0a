package repositories

import (
	"database/sql"
	"strings"
	"time"

	"sahelbus/internal/domain"
	"sahelbus/internal/domain/models"
	"sahelbus/internal/utils"
)

type TripRepo struct {
	DB *sql.DB
}

const tripCols = `id, bus_id, route_id, departure_time, arrival_time, price, status`

func (r TripRepo) Create(t models.Trip) (models.Trip, error) {
	if t.Status == "" {
		t.Status = models.TripScheduled
	}
	res, err := r.DB.Exec(`
		INSERT INTO trips (bus_id, route_id, departure_time, arrival_time, price, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.BusID, t.RouteID, t.DepartureTime, t.ArrivalTime, t.Price, string(t.Status),
	)
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "insert trip", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "trip id", Err: err}
	}
	t.ID = id
	return t, nil
}

func (r TripRepo) GetByID(id int64) (models.Trip, error) {
	var (
		t      models.Trip
		status string
	)
	err := r.DB.QueryRow(`SELECT `+tripCols+` FROM trips WHERE id = ?`, id).
		Scan(&t.ID, &t.BusID, &t.RouteID, &t.DepartureTime, &t.ArrivalTime, &t.Price, &status)
	if err == sql.ErrNoRows {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "get trip", Err: err}
	}
	t.Status = models.TripStatus(status)
	return t, nil
}

// Search filters on origin/destination via the routes table and on
// the departure date, all filters optional.
func (r TripRepo) Search(from, to string, date time.Time) ([]models.Trip, error) {
	query := `
		SELECT t.id, t.bus_id, t.route_id, t.departure_time, t.arrival_time, t.price, t.status
		FROM trips t
		JOIN routes rt ON rt.id = t.route_id
		WHERE 1=1`
	args := []any{}

	if s := strings.TrimSpace(from); s != "" {
		query += ` AND LOWER(rt.origin) = LOWER(?)`
		args = append(args, s)
	}
	if s := strings.TrimSpace(to); s != "" {
		query += ` AND LOWER(rt.destination) = LOWER(?)`
		args = append(args, s)
	}
	if !date.IsZero() {
		query += ` AND DATE(t.departure_time) = ?`
		args = append(args, utils.FormatDate(date))
	}
	query += ` ORDER BY t.departure_time ASC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Msg: "search trips", Err: err}
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		var (
			t      models.Trip
			status string
		)
		if err := rows.Scan(&t.ID, &t.BusID, &t.RouteID, &t.DepartureTime, &t.ArrivalTime, &t.Price, &status); err != nil {
			return nil, domain.InternalError{Msg: "scan trip", Err: err}
		}
		t.Status = models.TripStatus(status)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepo) UpdateStatus(id int64, status models.TripStatus) (models.Trip, error) {
	if !models.ValidTripStatus(status) {
		return models.Trip{}, domain.ValidationError{Field: "status", Msg: "unknown trip status " + string(status)}
	}
	res, err := r.DB.Exec(`UPDATE trips SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "update trip status", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	return r.GetByID(id)
}
