package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidEmail = errors.New("invalid email format")
)

// User mirrors an identity owned by the hosted auth provider. The id is the
// provider's subject claim; rows are provisioned on first authenticated
// request, never through a local signup flow.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewUser(id, email string) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrHabitInvalidUserID
	}

	email = strings.TrimSpace(email)
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	now := time.Now().UTC()
	return &User{
		ID:        id,
		Email:     strings.ToLower(email),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
