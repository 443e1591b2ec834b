package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/subscriptions-api/internal/api/shared"
	"github.com/phrazzld/subscriptions-api/internal/domain"
	"github.com/phrazzld/subscriptions-api/internal/service"
	"github.com/phrazzld/subscriptions-api/internal/store"
)

const genericErrorMessage = "An unexpected error occurred"

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. Unknown errors become 500 so that infrastructure
// failures never masquerade as client mistakes.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors

	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// The ids are valid on their own but do not belong together.
	case errors.Is(err, service.ErrSubscriptionNotOwned):
		return http.StatusBadRequest

	// Bad request errors. Constraint violations surfaced by the store
	// (store.ErrInvalidEntity) are data access failures and stay 500.
	case domain.IsValidationError(err), errors.As(err, &verrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a message that can be shown to API clients.
// Messages for not-found and ownership errors name the ids involved since the
// client supplied them; anything else collapses to a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return genericErrorMessage
	}

	var (
		notFound  *service.NotFoundError
		ownership *service.OwnershipError
		verr      *domain.ValidationError
		verrs     validator.ValidationErrors
	)

	switch {
	case errors.As(err, &notFound):
		return notFound.Error()

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrSubscriptionNotFound):
		return "No subscriptions found"

	case errors.As(err, &ownership):
		return ownership.Error()

	case errors.Is(err, service.ErrSubscriptionNotOwned):
		return "Subscription does not belong to user"

	case errors.As(err, &verrs):
		return SanitizeValidationError(err)

	case errors.As(err, &verr):
		return fmt.Sprintf("Invalid %s: %s", verr.Field, verr.Message)

	default:
		return genericErrorMessage
	}
}

// SanitizeValidationError turns request validation failures into a short
// message naming the first offending field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", first.Field(), getValidationTagMessage(first.Tag()))
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf("Invalid %s: %s", verr.Field, verr.Message)
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// full error. A non-empty defaultMsg replaces the generic message on 500s.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		msg = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err)
}
