package auth

import "context"

type ctxKey int

const (
	ctxPrincipal ctxKey = iota
	ctxClaims
)

// WithIdentity attaches the resolved principal and its raw claims to the
// request context for downstream authorization.
func WithIdentity(ctx context.Context, p Principal, c Claims) context.Context {
	ctx = context.WithValue(ctx, ctxPrincipal, p)
	ctx = context.WithValue(ctx, ctxClaims, c)
	return ctx
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxPrincipal).(Principal)
	return p, ok && p.ID != ""
}

func ClaimsFrom(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(ctxClaims).(Claims)
	return c, ok
}
