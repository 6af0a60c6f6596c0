package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// Logout revokes token until its expiry.
	Logout(ctx context.Context, token string, expiresAt int64) error
	// Resolve loads the current state of the employee behind a verified token.
	Resolve(ctx context.Context, employeeID string) (Principal, error)
}
