package model

import "context"

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CompanyID string `json:"companyId,omitempty"`
}

// IsPlatformAdmin reports whether the principal administers the whole platform.
func (p Principal) IsPlatformAdmin() bool {
	return p.Role == RolePlatformAdmin
}

type principalKey struct{}

// WithPrincipal stores the principal in the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored in the context, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// ActorFrom returns the id of the authenticated caller, or "" when anonymous.
func ActorFrom(ctx context.Context) string {
	p, _ := PrincipalFrom(ctx)
	return p.UserID
}
