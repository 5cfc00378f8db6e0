package models

import (
	"errors"
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsStaff      bool      `json:"-"`
	IsSuperuser  bool      `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRef is the compact identity shape embedded in request payloads and the
// collector directory.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Username: u.Username, Email: u.Email}
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return errors.New("username required")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("invalid email")
	}
	return nil
}
