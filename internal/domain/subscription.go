package domain

import (
	"time"
	"unicode/utf8"
)

// NamedService is an external service users subscribe to, e.g. "Netflix".
// Names are unique and matched exactly, case and whitespace included; one row is shared by
// every subscription to that service.
type NamedService struct {
	ID   int64  `json:"id"           db:"id"`
	Name string `json:"service_name" db:"service_name"`
}

// NewNamedService creates a not yet persisted service record.
func NewNamedService(name string) (*NamedService, error) {
	svc := &NamedService{Name: name}
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	return svc, nil
}

// Validate checks if the NamedService has valid data.
func (s *NamedService) Validate() error {
	if isBlank(s.Name) {
		return NewValidationError("service_name", "is required", ErrEmptyContent)
	}
	if utf8.RuneCountInString(s.Name) > MaxNameLength {
		return NewValidationError("service_name", "exceeds 255 characters", ErrFieldTooLong)
	}
	return nil
}

// Subscription links exactly one user to exactly one named service.
// Ownership is fixed at creation; a subscription is never transferred.
type Subscription struct {
	ID          int64     `json:"id"           db:"id"`
	UserID      int64     `json:"user_id"      db:"user_id"`
	ServiceID   int64     `json:"service_id"   db:"service_id"`
	ServiceName string    `json:"service_name" db:"service_name"`
	CreatedAt   time.Time `json:"created_at"   db:"created_at"`
}

// NewSubscription creates a not yet persisted subscription of user to svc.
func NewSubscription(userID int64, svc *NamedService) (*Subscription, error) {
	if svc == nil {
		return nil, NewValidationError("service", "is required", ErrValidation)
	}

	sub := &Subscription{
		UserID:      userID,
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		CreatedAt:   time.Now().UTC(),
	}

	if err := sub.Validate(); err != nil {
		return nil, err
	}
	return sub, nil
}

// Validate checks if the Subscription has valid data.
func (s *Subscription) Validate() error {
	if s.UserID <= 0 {
		return NewValidationError("user_id", "must be positive", ErrInvalidID)
	}
	if s.ServiceID <= 0 {
		return NewValidationError("service_id", "must be positive", ErrInvalidID)
	}
	return nil
}

// OwnedBy reports whether the subscription belongs to the given user.
func (s *Subscription) OwnedBy(userID int64) bool {
	return s.UserID == userID
}

// ServicePopularity is one row of the popularity ranking: a service name
// and the number of subscriptions referencing it.
type ServicePopularity struct {
	ServiceName   string `db:"service_name"`
	Subscriptions int64  `db:"subscriptions"`
}
