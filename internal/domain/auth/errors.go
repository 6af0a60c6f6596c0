package auth

import "github.com/cmlabs-hris/kintai-backend-go/internal/pkg/apperror"

var (
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthenticated, "INVALID_CREDENTIALS", "invalid employee code or password")
	ErrInvalidToken       = apperror.New(apperror.KindUnauthenticated, "INVALID_TOKEN", "invalid or expired token")
	ErrUnauthenticated    = apperror.New(apperror.KindUnauthenticated, "UNAUTHENTICATED", "authentication required")
	ErrRetiredEmployee    = apperror.New(apperror.KindPolicyDenied, "RETIRED_EMPLOYEE", "retired employees cannot perform this operation")
	ErrAccessDenied       = apperror.New(apperror.KindPolicyDenied, "ACCESS_DENIED", "you do not have permission to perform this operation")
)
