package dispatch

import "errors"

// Error taxonomy for the lifecycle operations. Callers classify with
// errors.Is; the HTTP layer maps KindOf to the wire errorKind.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrValidation        = errors.New("validation failed")
	ErrPersistence       = errors.New("persistence failure")
)

func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "persistence"
	}
}
