package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"sahelbus/internal/domain"
	"sahelbus/internal/domain/models"
	"sahelbus/internal/utils"
)

// MySQLStore persists the ledger in two tables: reservations (the
// audit rows, never deleted) and reservation_seats (one row per held
// seat). reservation_seats carries a unique key over
// (trip_id, seat_code, active) with active 1 for live holds and NULL
// after cancellation, so the database itself rejects a second active
// hold of the same seat even across processes.
type MySQLStore struct {
	DB *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{DB: db}
}

const (
	mysqlErrDupEntry = 1062

	reservationCols = `id, trip_id, passenger_name, passenger_email, passenger_phone, status, total_price, receipt_code, created_at`
)

func tripLockKey(tripID int64) string {
	return fmt.Sprintf("booking:trip:%d", tripID)
}

func acquireNamedLock(tx *sql.Tx, key string, timeoutSec int) error {
	var got sql.NullInt64
	if err := tx.QueryRow(`SELECT GET_LOCK(?, ?)`, key, timeoutSec).Scan(&got); err != nil {
		return err
	}
	if !got.Valid || got.Int64 != 1 {
		return errors.New("cannot acquire lock " + key)
	}
	return nil
}

func releaseNamedLock(tx *sql.Tx, key string) {
	_, _ = tx.Exec(`SELECT RELEASE_LOCK(?)`, key)
}

func (s *MySQLStore) Create(d Draft) (models.Reservation, error) {
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

	tx, err := s.DB.Begin()
	if err != nil {
		return models.Reservation{}, domain.InternalError{Msg: "begin tx", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Serialize admissions per trip; the unique key below still
	// backstops lock timeouts and other processes.
	lockKey := tripLockKey(d.TripID)
	locked := false
	if err := acquireNamedLock(tx, lockKey, 5); err != nil {
		utils.LogEvent("", "ledger", "lock_unavailable",
			fmt.Sprintf("key=%s err=%v", lockKey, err))
	} else {
		locked = true
	}
	defer func() {
		// Release while the tx is still usable. After commit the lock
		// would leak on the pooled connection until session end.
		if locked {
			releaseNamedLock(tx, lockKey)
			locked = false
		}
	}()

	now := time.Now()
	result, err := tx.Exec(`
		INSERT INTO reservations (trip_id, passenger_name, passenger_email, passenger_phone, status, total_price, receipt_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.TripID, d.PassengerName, d.PassengerEmail, d.PassengerPhone, string(status), d.TotalPrice, d.ReceiptCode, now,
	)
	if err != nil {
		return models.Reservation{}, domain.InternalError{Msg: "insert reservation", Err: err}
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Reservation{}, domain.InternalError{Msg: "reservation id", Err: err}
	}

	for _, seatCode := range d.Seats {
		if _, err := tx.Exec(`
			INSERT INTO reservation_seats (reservation_id, trip_id, seat_code, active)
			VALUES (?, ?, ?, 1)`,
			id, d.TripID, seatCode,
		); err != nil {
			if isDupEntry(err) {
				return models.Reservation{}, domain.SeatAlreadyReservedError{TripID: d.TripID, Seats: []string{seatCode}}
			}
			return models.Reservation{}, domain.InternalError{Msg: "insert seat", Err: err}
		}
	}

	if locked {
		releaseNamedLock(tx, lockKey)
		locked = false
	}
	if err := tx.Commit(); err != nil {
		return models.Reservation{}, domain.InternalError{Msg: "commit reservation", Err: err}
	}
	committed = true

	return models.Reservation{
		ID:             id,
		TripID:         d.TripID,
		Seats:          append([]string(nil), d.Seats...),
		PassengerName:  d.PassengerName,
		PassengerEmail: d.PassengerEmail,
		PassengerPhone: d.PassengerPhone,
		Status:         status,
		TotalPrice:     d.TotalPrice,
		ReceiptCode:    d.ReceiptCode,
		CreatedAt:      now,
	}, nil
}

func (s *MySQLStore) GetByID(id int64) (models.Reservation, error) {
	row := s.DB.QueryRow(`SELECT `+reservationCols+` FROM reservations WHERE id = ?`, id)
	return s.scanWithSeats(row)
}

func (s *MySQLStore) GetByReceiptCode(code string) (models.Reservation, error) {
	row := s.DB.QueryRow(`SELECT `+reservationCols+` FROM reservations WHERE receipt_code = ?`, code)
	return s.scanWithSeats(row)
}

func (s *MySQLStore) FindActiveByTripAndSeat(tripID int64, seatLabel string) (models.Reservation, bool, error) {
	var id int64
	err := s.DB.QueryRow(`
		SELECT reservation_id FROM reservation_seats
		WHERE trip_id = ? AND seat_code = ? AND active = 1
		LIMIT 1`,
		tripID, seatLabel,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return models.Reservation{}, false, nil
	}
	if err != nil {
		return models.Reservation{}, false, domain.InternalError{Msg: "find active seat", Err: err}
	}
	res, err := s.GetByID(id)
	if err != nil {
		return models.Reservation{}, false, err
	}
	return res, true, nil
}

func (s *MySQLStore) ListByTrip(tripID int64) ([]models.Reservation, error) {
	rows, err := s.DB.Query(`SELECT `+reservationCols+` FROM reservations WHERE trip_id = ? ORDER BY created_at ASC, id ASC`, tripID)
	if err != nil {
		return nil, domain.InternalError{Msg: "list by trip", Err: err}
	}
	return s.collect(rows)
}

func (s *MySQLStore) ListByPassengerEmail(email string) ([]models.Reservation, error) {
	rows, err := s.DB.Query(`SELECT `+reservationCols+` FROM reservations WHERE passenger_email = ? ORDER BY created_at ASC, id ASC`, strings.TrimSpace(email))
	if err != nil {
		return nil, domain.InternalError{Msg: "list by email", Err: err}
	}
	return s.collect(rows)
}

func (s *MySQLStore) UpdateStatus(id int64, to models.ReservationStatus) (models.Reservation, error) {
	if !models.ValidReservationStatus(to) {
		return models.Reservation{}, domain.ValidationError{Field: "status", Msg: "unknown status " + string(to)}
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return models.Reservation{}, domain.InternalError{Msg: "begin tx", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var from string
	err = tx.QueryRow(`SELECT status FROM reservations WHERE id = ? FOR UPDATE`, id).Scan(&from)
	if err == sql.ErrNoRows {
		return models.Reservation{}, domain.NotFoundError{Resource: "reservation"}
	}
	if err != nil {
		return models.Reservation{}, domain.InternalError{Msg: "lock reservation", Err: err}
	}

	if !models.CanTransition(models.ReservationStatus(from), to) {
		return models.Reservation{}, domain.InvalidTransitionError{From: from, To: string(to)}
	}

	if _, err := tx.Exec(`UPDATE reservations SET status = ? WHERE id = ?`, string(to), id); err != nil {
		return models.Reservation{}, domain.InternalError{Msg: "update status", Err: err}
	}
	if to == models.ReservationCancelled {
		// Releasing the seats: active goes NULL so the unique key
		// stops guarding these rows.
		if _, err := tx.Exec(`UPDATE reservation_seats SET active = NULL WHERE reservation_id = ?`, id); err != nil {
			return models.Reservation{}, domain.InternalError{Msg: "release seats", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Reservation{}, domain.InternalError{Msg: "commit status", Err: err}
	}
	committed = true

	return s.GetByID(id)
}

func (s *MySQLStore) scanWithSeats(row *sql.Row) (models.Reservation, error) {
	var r models.Reservation
	var status string
	err := row.Scan(&r.ID, &r.TripID, &r.PassengerName, &r.PassengerEmail, &r.PassengerPhone, &status, &r.TotalPrice, &r.ReceiptCode, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Reservation{}, domain.NotFoundError{Resource: "reservation"}
	}
	if err != nil {
		return models.Reservation{}, domain.InternalError{Msg: "scan reservation", Err: err}
	}
	r.Status = models.ReservationStatus(status)
	r.Seats, err = s.seatsFor(r.ID)
	if err != nil {
		return models.Reservation{}, err
	}
	return r, nil
}

func (s *MySQLStore) collect(rows *sql.Rows) ([]models.Reservation, error) {
	defer rows.Close()
	out := []models.Reservation{}
	for rows.Next() {
		var r models.Reservation
		var status string
		if err := rows.Scan(&r.ID, &r.TripID, &r.PassengerName, &r.PassengerEmail, &r.PassengerPhone, &status, &r.TotalPrice, &r.ReceiptCode, &r.CreatedAt); err != nil {
			return nil, domain.InternalError{Msg: "scan reservation", Err: err}
		}
		r.Status = models.ReservationStatus(status)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "iterate reservations", Err: err}
	}
	for i := range out {
		seats, err := s.seatsFor(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Seats = seats
	}
	return out, nil
}

func (s *MySQLStore) seatsFor(reservationID int64) ([]string, error) {
	rows, err := s.DB.Query(`SELECT seat_code FROM reservation_seats WHERE reservation_id = ? ORDER BY id ASC`, reservationID)
	if err != nil {
		return nil, domain.InternalError{Msg: "list seats", Err: err}
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, domain.InternalError{Msg: "scan seat", Err: err}
		}
		out = append(out, code)
	}
	return out, rows.Err()
}

func isDupEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDupEntry
}
