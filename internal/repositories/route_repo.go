package repositories

import (
	"database/sql"

	"sahelbus/internal/domain"
	"sahelbus/internal/domain/models"
)

type RouteRepo struct {
	DB *sql.DB
}

func (r RouteRepo) Create(route models.Route) (models.Route, error) {
	res, err := r.DB.Exec(`
		INSERT INTO routes (origin, destination, distance_km, duration_min, price, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		route.From, route.To, route.DistanceKm, route.EstimatedDuration, route.Price, route.IsActive,
	)
	if err != nil {
		return models.Route{}, domain.InternalError{Msg: "insert route", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Route{}, domain.InternalError{Msg: "route id", Err: err}
	}
	route.ID = id
	return route, nil
}

func (r RouteRepo) GetByID(id int64) (models.Route, error) {
	var route models.Route
	err := r.DB.QueryRow(`
		SELECT id, origin, destination, distance_km, duration_min, price, is_active
		FROM routes WHERE id = ?`, id,
	).Scan(&route.ID, &route.From, &route.To, &route.DistanceKm, &route.EstimatedDuration, &route.Price, &route.IsActive)
	if err == sql.ErrNoRows {
		return models.Route{}, domain.NotFoundError{Resource: "route"}
	}
	if err != nil {
		return models.Route{}, domain.InternalError{Msg: "get route", Err: err}
	}
	return route, nil
}

func (r RouteRepo) List() ([]models.Route, error) {
	rows, err := r.DB.Query(`
		SELECT id, origin, destination, distance_km, duration_min, price, is_active
		FROM routes ORDER BY id ASC`)
	if err != nil {
		return nil, domain.InternalError{Msg: "list routes", Err: err}
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var route models.Route
		if err := rows.Scan(&route.ID, &route.From, &route.To, &route.DistanceKm, &route.EstimatedDuration, &route.Price, &route.IsActive); err != nil {
			return nil, domain.InternalError{Msg: "scan route", Err: err}
		}
		out = append(out, route)
	}
	return out, rows.Err()
}
