package domain

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxNameLength is the widest name or email the users table accepts.
const MaxNameLength = 255

// User represents a person who can hold subscriptions.
// Email is expected to be unique but the store does not enforce it.
type User struct {
	ID        int64     `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Email     string    `json:"email"      db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser creates a new, not yet persisted User.
// The ID stays zero until the store assigns one.
func NewUser(name, email string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID < 0 {
		return NewValidationError("id", "must not be negative", ErrInvalidID)
	}

	if isBlank(u.Name) {
		return NewValidationError("name", "is required", ErrEmptyContent)
	}
	if utf8.RuneCountInString(u.Name) > MaxNameLength {
		return NewValidationError("name", "exceeds 255 characters", ErrFieldTooLong)
	}

	if isBlank(u.Email) {
		return NewValidationError("email", "is required", ErrEmptyContent)
	}
	if utf8.RuneCountInString(u.Email) > MaxNameLength {
		return NewValidationError("email", "exceeds 255 characters", ErrFieldTooLong)
	}
	if !validateEmailFormat(u.Email) {
		return NewValidationError("email", "is malformed", ErrInvalidEmail)
	}

	return nil
}

// Rename overwrites the mutable fields of the user and bumps UpdatedAt.
func (u *User) Rename(name, email string) error {
	updated := *u
	updated.Name = name
	updated.Email = email
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return err
	}

	*u = updated
	return nil
}

// isBlank reports whether s holds nothing but whitespace. Values are stored
// exactly as given, so blankness is checked without rewriting them.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// validateEmailFormat accepts a bare RFC 5322 address (no display name).
func validateEmailFormat(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	if addr.Address != email {
		return false
	}

	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
