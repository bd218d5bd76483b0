package auth

import "errors"

// Decode failures. Each is detected independently so tests can assert the
// specific cause; the HTTP layer collapses all of them into one generic
// "invalid or expired token" response to avoid oracle attacks.
var (
	ErrTokenMalformed   = errors.New("token malformed")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrMissingClaim     = errors.New("missing required claim")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenNotYetValid = errors.New("token not yet valid")
	ErrWrongIssuer      = errors.New("wrong issuer")
	ErrWrongAudience    = errors.New("wrong audience")
)

// Service failures.
var (
	// ErrInvalidCredentials is returned identically for unknown email,
	// wrong password and inactive account. Hard contract: do not split
	// these cases (account enumeration).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers any decode failure during refresh.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrWrongTokenType signals an access token used where a refresh token
	// was expected, or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrUserInactive signals a refresh for a subject that no longer
	// exists or has been deactivated.
	ErrUserInactive = errors.New("user inactive")
)
