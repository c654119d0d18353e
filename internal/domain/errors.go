package domain

import "errors"

// Domain errors
var (
	ErrCardNotFound         = errors.New("card not found")
	ErrStatusNotFound       = errors.New("status not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrAccessDenied         = errors.New("access denied")
	ErrInvalidToken         = errors.New("invalid token")
	ErrStatusQuotaExceeded  = errors.New("daily status limit reached for this plan")
	ErrProductQuotaExceeded = errors.New("active product limit reached for this plan")
	ErrUnknownPlan          = errors.New("unknown plan")
	ErrStoreUnavailable     = errors.New("store unavailable")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
