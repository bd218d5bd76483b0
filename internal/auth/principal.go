package auth

// Principal is the resolved caller identity used for authorization
// decisions. It is a per-request projection of verified claims, never
// persisted independently.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// ResolvePrincipal projects verified claims into a Principal.
func ResolvePrincipal(c Claims) Principal {
	return Principal{
		ID:    c.Subject,
		Email: c.Email,
		Role:  c.Role,
	}
}

// RequireType distinguishes access-token from refresh-token contexts.
func RequireType(c Claims, typ TokenType) error {
	if c.TokenType != typ {
		return ErrWrongTokenType
	}
	return nil
}
