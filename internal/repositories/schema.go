package repositories

import "database/sql"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS buses (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(191) NOT NULL,
		capacity INT NOT NULL,
		layout_rows INT NOT NULL,
		layout_columns INT NOT NULL,
		amenities VARCHAR(512) NOT NULL DEFAULT '',
		is_active TINYINT(1) NOT NULL DEFAULT 1
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS routes (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		origin VARCHAR(191) NOT NULL,
		destination VARCHAR(191) NOT NULL,
		distance_km INT NOT NULL DEFAULT 0,
		duration_min INT NOT NULL DEFAULT 0,
		price BIGINT NOT NULL DEFAULT 0,
		is_active TINYINT(1) NOT NULL DEFAULT 1
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS trips (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		bus_id BIGINT NOT NULL,
		route_id BIGINT NOT NULL,
		departure_time DATETIME NOT NULL,
		arrival_time DATETIME NOT NULL,
		price BIGINT NOT NULL DEFAULT 0,
		status VARCHAR(16) NOT NULL DEFAULT 'scheduled',
		KEY idx_route (route_id),
		KEY idx_departure (departure_time)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(191) NOT NULL,
		email VARCHAR(191) NOT NULL,
		phone VARCHAR(64) NOT NULL DEFAULT '',
		role VARCHAR(16) NOT NULL DEFAULT 'user',
		password_hash VARCHAR(191) NOT NULL,
		created_at DATETIME NOT NULL,
		UNIQUE KEY uq_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the reference tables when missing.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
