package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxUsernameLen = 30

// User represents a job seeker account. Authentication is handled by an
// external identity layer; this record carries profile data only.
type User struct {
	Username  string    `json:"username"   db:"username"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name"  db:"last_name"`
	Email     string    `json:"email"      db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateUserRequest represents parameters to create a User.
type CreateUserRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Validate validates CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	username := strings.TrimSpace(r.Username)
	if username == "" {
		return errors.New("username is required and cannot be empty")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return errors.New("username cannot exceed 30 characters")
	}
	if strings.ContainsAny(username, " \t\n") {
		return errors.New("username cannot contain whitespace")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(email, "@") {
		return errors.New("email is not valid")
	}
	return nil
}

// UserUpdateColumns returns the field-to-column translation table for partial
// user updates.
func UserUpdateColumns() map[string]string {
	return map[string]string{
		"firstName": "first_name",
		"lastName":  "last_name",
	}
}
