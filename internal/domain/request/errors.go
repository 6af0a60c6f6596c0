package request

import "github.com/cmlabs-hris/kintai-backend-go/internal/pkg/apperror"

var (
	ErrRequestNotFound  = apperror.New(apperror.KindNotFound, "REQUEST_NOT_FOUND", "request not found")
	ErrAlreadyProcessed = apperror.New(apperror.KindStateConflict, "ALREADY_PROCESSED", "request has already been approved or rejected")
	ErrDuplicateRequest = apperror.New(apperror.KindStateConflict, "DUPLICATE_REQUEST", "a request for this date already exists")
)
