package repositories

import (
	"database/sql"
	"strings"
	"time"

	"sahelbus/internal/domain"
	"sahelbus/internal/domain/models"
)

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) Create(u models.User) (models.User, error) {
	u.CreatedAt = time.Now()
	res, err := r.DB.Exec(`
		INSERT INTO users (name, email, phone, role, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.Name, strings.ToLower(strings.TrimSpace(u.Email)), u.Phone, u.Role, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "insert user", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "user id", Err: err}
	}
	u.ID = id
	return u, nil
}

func (r UserRepo) GetByEmail(email string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRow(`
		SELECT id, name, email, phone, role, password_hash, created_at
		FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "get user", Err: err}
	}
	return u, nil
}
