package ledger

import "database/sql"

// DDL for the ledger tables. uq_trip_seat_active is the double-booking
// backstop: MySQL unique keys skip NULLs, so cancelled rows (active
// NULL) stop blocking re-booking while the audit row stays put.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		trip_id BIGINT NOT NULL,
		passenger_name VARCHAR(191) NOT NULL,
		passenger_email VARCHAR(191) NOT NULL,
		passenger_phone VARCHAR(64) NOT NULL DEFAULT '',
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		total_price BIGINT NOT NULL DEFAULT 0,
		receipt_code CHAR(36) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		UNIQUE KEY uq_receipt_code (receipt_code),
		KEY idx_trip (trip_id),
		KEY idx_email (passenger_email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservation_seats (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		reservation_id BIGINT NOT NULL,
		trip_id BIGINT NOT NULL,
		seat_code VARCHAR(8) NOT NULL,
		active TINYINT NULL DEFAULT 1,
		UNIQUE KEY uq_trip_seat_active (trip_id, seat_code, active),
		KEY idx_reservation (reservation_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS payments (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		reservation_id BIGINT NOT NULL,
		amount BIGINT NOT NULL,
		method VARCHAR(32) NOT NULL,
		transaction_id VARCHAR(64) NOT NULL DEFAULT '',
		created_at DATETIME(6) NOT NULL,
		KEY idx_reservation (reservation_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the ledger tables when missing. Reference
// tables (buses, routes, trips, users) are owned by the repositories
// package.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
