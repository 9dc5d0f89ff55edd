package models

import "time"

type Role string

const (
	Admin   Role = "admin"
	Trainer Role = "trainer"
)

func (r Role) Valid() bool {
	return r == Admin || r == Trainer
}

type User struct {
	ID           string    `json:"id"`
	UID          string    `json:"uid"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
