package repositories

import (
	"database/sql"
	"strings"

	"sahelbus/internal/domain"
	"sahelbus/internal/domain/models"
	"sahelbus/internal/seat"
)

type BusRepo struct {
	DB *sql.DB
}

func (r BusRepo) Create(b models.Bus) (models.Bus, error) {
	res, err := r.DB.Exec(`
		INSERT INTO buses (name, capacity, layout_rows, layout_columns, amenities, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.Name, b.Capacity, b.Layout.Rows, b.Layout.Columns, strings.Join(b.Amenities, ","), b.IsActive,
	)
	if err != nil {
		return models.Bus{}, domain.InternalError{Msg: "insert bus", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Bus{}, domain.InternalError{Msg: "bus id", Err: err}
	}
	b.ID = id
	return b, nil
}

func (r BusRepo) GetByID(id int64) (models.Bus, error) {
	var (
		b          models.Bus
		rows, cols int
		amenities  string
	)
	err := r.DB.QueryRow(`
		SELECT id, name, capacity, layout_rows, layout_columns, amenities, is_active
		FROM buses WHERE id = ?`, id,
	).Scan(&b.ID, &b.Name, &b.Capacity, &rows, &cols, &amenities, &b.IsActive)
	if err == sql.ErrNoRows {
		return models.Bus{}, domain.NotFoundError{Resource: "bus"}
	}
	if err != nil {
		return models.Bus{}, domain.InternalError{Msg: "get bus", Err: err}
	}
	layout, err := seat.NewLayout(rows, cols)
	if err != nil {
		return models.Bus{}, err
	}
	b.Layout = layout
	b.Amenities = splitCSV(amenities)
	return b, nil
}

func (r BusRepo) List() ([]models.Bus, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, capacity, layout_rows, layout_columns, amenities, is_active
		FROM buses ORDER BY id ASC`)
	if err != nil {
		return nil, domain.InternalError{Msg: "list buses", Err: err}
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		var (
			b        models.Bus
			rc, cc   int
			amenCSV  string
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Capacity, &rc, &cc, &amenCSV, &b.IsActive); err != nil {
			return nil, domain.InternalError{Msg: "scan bus", Err: err}
		}
		layout, err := seat.NewLayout(rc, cc)
		if err != nil {
			return nil, err
		}
		b.Layout = layout
		b.Amenities = splitCSV(amenCSV)
		out = append(out, b)
	}
	return out, rows.Err()
}

func splitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
