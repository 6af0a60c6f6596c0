package middleware

import (
	"context"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
)

type principalKey struct{}

func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by AuthRequired.
func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(auth.Principal)
	return p, ok
}
