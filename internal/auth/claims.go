package auth

import "github.com/golang-jwt/jwt/v5"

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Role is the closed role set. There is no hierarchy beyond the
// authorization rules in internal/authz; keep these values stable,
// they are embedded in issued tokens.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleSupplier Role = "SUPPLIER"
)

func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleSupplier
}

// Claims are the only supported JWT claims shape for this service.
// Both access and refresh tokens carry sub/email/role; refresh rotation
// re-issues a pair from these claims without another directory read
// beyond the active-status check.
type Claims struct {
	jwt.RegisteredClaims

	Email     string    `json:"email,omitempty"`
	Role      Role      `json:"role,omitempty"`
	TokenType TokenType `json:"typ,omitempty"`
}

// requiredClaim names mirror the decode contract: verification fails with
// ErrMissingClaim when any of these is absent from the payload.
func (c Claims) missingRequired() string {
	switch {
	case c.Issuer == "":
		return "iss"
	case len(c.Audience) == 0:
		return "aud"
	case c.IssuedAt == nil:
		return "iat"
	case c.NotBefore == nil:
		return "nbf"
	case c.ExpiresAt == nil:
		return "exp"
	case c.Subject == "":
		return "sub"
	case c.TokenType == "":
		return "typ"
	}
	return ""
}
