package repositories

import (
	"database/sql"
	"time"

	"sahelbus/internal/domain"
	"sahelbus/internal/domain/models"
)

type PaymentRepo struct {
	DB *sql.DB
}

func (r PaymentRepo) Create(p models.Payment) (models.Payment, error) {
	p.CreatedAt = time.Now()
	res, err := r.DB.Exec(`
		INSERT INTO payments (reservation_id, amount, method, transaction_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.ReservationID, p.Amount, p.Method, p.TransactionID, p.CreatedAt,
	)
	if err != nil {
		return models.Payment{}, domain.InternalError{Msg: "insert payment", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Payment{}, domain.InternalError{Msg: "payment id", Err: err}
	}
	p.ID = id
	return p, nil
}

func (r PaymentRepo) ListByReservation(reservationID int64) ([]models.Payment, error) {
	rows, err := r.DB.Query(`
		SELECT id, reservation_id, amount, method, transaction_id, created_at
		FROM payments WHERE reservation_id = ? ORDER BY id ASC`, reservationID)
	if err != nil {
		return nil, domain.InternalError{Msg: "list payments", Err: err}
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.Amount, &p.Method, &p.TransactionID, &p.CreatedAt); err != nil {
			return nil, domain.InternalError{Msg: "scan payment", Err: err}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
