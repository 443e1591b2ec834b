package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewNamedService(t *testing.T) {
	svc, err := NewNamedService(" Netflix ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if svc.Name != " Netflix " {
		t.Errorf("Expected name to be kept as given, got %q", svc.Name)
	}

	_, err = NewNamedService("   ")
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Expected error %v, got %v", ErrEmptyContent, err)
	}

	cyrillic := strings.Repeat("Ю", 160)
	svc, err = NewNamedService(cyrillic)
	if err != nil {
		t.Fatalf("Expected multibyte name within limit to pass, got %v", err)
	}
	if svc.Name != cyrillic {
		t.Errorf("Expected name to be kept as given, got %q", svc.Name)
	}

	_, err = NewNamedService(strings.Repeat("Ю", MaxNameLength+1))
	if !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("Expected error %v, got %v", ErrFieldTooLong, err)
	}
}

func TestNewSubscription(t *testing.T) {
	svc := &NamedService{ID: 10, Name: "Spotify"}

	sub, err := NewSubscription(4, svc)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sub.UserID != 4 || sub.ServiceID != 10 || sub.ServiceName != "Spotify" {
		t.Errorf("Unexpected subscription %+v", sub)
	}
	if sub.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}

	_, err = NewSubscription(0, svc)
	if !errors.Is(err, ErrInvalidID) {
		t.Errorf("Expected error %v, got %v", ErrInvalidID, err)
	}

	_, err = NewSubscription(4, &NamedService{Name: "Unsaved"})
	if !errors.Is(err, ErrInvalidID) {
		t.Errorf("Expected error %v for unsaved service, got %v", ErrInvalidID, err)
	}

	_, err = NewSubscription(4, nil)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected error %v, got %v", ErrValidation, err)
	}
}

func TestSubscriptionOwnedBy(t *testing.T) {
	sub := Subscription{ID: 1, UserID: 1, ServiceID: 2}

	if !sub.OwnedBy(1) {
		t.Error("Expected subscription to be owned by user 1")
	}
	if sub.OwnedBy(2) {
		t.Error("Expected subscription not to be owned by user 2")
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(NewValidationError("name", "is required", ErrEmptyContent)) {
		t.Error("Expected ValidationError to be classified as validation error")
	}
	if IsValidationError(errors.New("boom")) {
		t.Error("Expected plain error not to be classified as validation error")
	}
}
