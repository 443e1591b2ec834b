package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to HTTP status codes.
var (
	// ErrSubscriptionNotOwned indicates the subscription exists but belongs to
	// a different user than the one named in the request.
	// API layer should map this to HTTP 400 Bad Request.
	ErrSubscriptionNotOwned = errors.New("subscription is not owned by user")
)

// ServiceError wraps unexpected errors from the service layer with the
// operation that failed. Sentinels from lower layers stay reachable through Unwrap.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NotFoundError reports a missing entity together with the identifier that
// was looked up. It unwraps to the store's entity-specific sentinel.
type NotFoundError struct {
	Entity string
	ID     int64
	Err    error
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}

// Unwrap returns the wrapped sentinel.
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// OwnershipError reports that a subscription was addressed through a user
// who does not own it.
type OwnershipError struct {
	SubscriptionID int64
	UserID         int64
}

// Error implements the error interface for OwnershipError.
func (e *OwnershipError) Error() string {
	return fmt.Sprintf("Subscription with ID %d does not belong to user with ID %d", e.SubscriptionID, e.UserID)
}

// Unwrap returns ErrSubscriptionNotOwned.
func (e *OwnershipError) Unwrap() error {
	return ErrSubscriptionNotOwned
}
