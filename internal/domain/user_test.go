package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  Ada Lovelace ", "ada@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID != 0 {
		t.Errorf("Expected zero ID before persistence, got %d", user.ID)
	}

	if user.Name != "  Ada Lovelace " {
		t.Errorf("Expected name to be kept as given, got %q", user.Name)
	}

	if user.Email != "ada@example.com" {
		t.Errorf("Expected email %s, got %s", "ada@example.com", user.Email)
	}

	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	_, err = NewUser("", "ada@example.com")
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Expected error %v, got %v", ErrEmptyContent, err)
	}

	_, err = NewUser(" \t ", "ada@example.com")
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Expected error %v for blank name, got %v", ErrEmptyContent, err)
	}

	_, err = NewUser("Ada", "")
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Expected error %v, got %v", ErrEmptyContent, err)
	}

	_, err = NewUser("Ada", "not-an-email")
	if !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:    1,
		Name:  "Grace",
		Email: "grace@example.com",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidUser := validUser
	invalidUser.ID = -5
	if err := invalidUser.Validate(); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Expected error %v, got %v", ErrInvalidID, err)
	}

	invalidUser = validUser
	invalidUser.Name = strings.Repeat("x", MaxNameLength+1)
	if err := invalidUser.Validate(); !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("Expected error %v, got %v", ErrFieldTooLong, err)
	}

	invalidUser = validUser
	invalidUser.Email = strings.Repeat("я", MaxNameLength) + "@example.com"
	if err := invalidUser.Validate(); !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("Expected error %v, got %v", ErrFieldTooLong, err)
	}

	invalidUser = validUser
	invalidUser.Email = "Grace <grace@example.com>"
	if err := invalidUser.Validate(); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	var ve *ValidationError
	if !errors.As(invalidUser.Validate(), &ve) || ve.Field != "email" {
		t.Errorf("Expected ValidationError on field email, got %v", invalidUser.Validate())
	}
}

func TestUserNameLengthCountsCharacters(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "multibyte under limit", input: strings.Repeat("Я", 200)},
		{name: "multibyte at limit", input: strings.Repeat("Я", MaxNameLength)},
		{name: "multibyte over limit", input: strings.Repeat("Я", MaxNameLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.input, "ivan@example.com")
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("Expected error %v, got %v", ErrFieldTooLong, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if user.Name != tt.input {
				t.Errorf("Expected name to be kept as given, got %q", user.Name)
			}
		})
	}
}

func TestUserRename(t *testing.T) {
	user := User{ID: 3, Name: "Old", Email: "old@example.com"}

	if err := user.Rename("New", "new@example.com"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Name != "New" || user.Email != "new@example.com" {
		t.Errorf("Expected fields to be overwritten, got %+v", user)
	}
	if user.ID != 3 {
		t.Errorf("Expected ID to be preserved, got %d", user.ID)
	}

	if err := user.Rename("  Alice ", "alice@example.com"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Name != "  Alice " {
		t.Errorf("Expected name to be kept as given, got %q", user.Name)
	}

	// A rejected rename leaves the user untouched.
	if err := user.Rename("", "bad"); err == nil {
		t.Fatal("Expected validation error")
	}
	if user.Name != "New" {
		t.Errorf("Expected name to stay %q, got %q", "New", user.Name)
	}
}

func TestValidateEmailFormat(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"user@localhost", false},
		{"@example.com", false},
		{"user@", false},
		{"plainaddress", false},
		{"Name <user@example.com>", false},
	}

	for _, tt := range tests {
		if got := validateEmailFormat(tt.email); got != tt.valid {
			t.Errorf("validateEmailFormat(%q) = %v, want %v", tt.email, got, tt.valid)
		}
	}
}
