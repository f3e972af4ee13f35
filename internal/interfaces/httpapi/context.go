package httpapi

import (
	"context"

	"github.com/riskibarqy/creator-booking/internal/domain/user"
)

type principalKey struct{}

// withPrincipal stores the principal RequireRole admitted.
func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	return p, ok
}
