package apperror

import (
	"errors"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

// Kind classifies an engine failure so callers can decide whether to retry.
type Kind int

const (
	KindInternal Kind = iota
	// KindValidation: malformed or out-of-range input, user must correct and retry.
	KindValidation
	// KindStateConflict: current state forbids the transition, re-read and retry.
	KindStateConflict
	// KindPolicyDenied: not retryable without an out-of-band change.
	KindPolicyDenied
	KindNotFound
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStateConflict:
		return "state_conflict"
	case KindPolicyDenied:
		return "policy_denied"
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf walks the error chain and returns the kind of the first classified error.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return KindValidation
	}
	return KindInternal
}

// CodeOf returns the machine readable code of err, or "" when unclassified.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	if KindOf(err) == KindValidation {
		return "VALIDATION_ERROR"
	}
	return ""
}

func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindValidation, KindStateConflict:
		return true
	default:
		return false
	}
}
