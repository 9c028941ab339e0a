package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"` // user / admin
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
