package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

var kindStatus = map[apperror.Kind]int{
	apperror.KindValidation:      http.StatusUnprocessableEntity,
	apperror.KindStateConflict:   http.StatusConflict,
	apperror.KindPolicyDenied:    http.StatusForbidden,
	apperror.KindNotFound:        http.StatusNotFound,
	apperror.KindUnauthenticated: http.StatusUnauthorized,
}

// StatusOf returns the HTTP status HandleError would write for err.
func StatusOf(err error) int {
	if status, ok := kindStatus[apperror.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		Fail(w, StatusOf(appErr), appErr.Code, appErr.Message, nil)
		return
	}

	slog.Error("Unhandled error", "error", err)
	InternalServerError(w, "An unexpected error occurred")
}
