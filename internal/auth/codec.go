package auth

import (
	"errors"
	"fmt"
	"time"

	"grocery-platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Codec encodes and decodes signed claim sets. It is stateless and safe
// for concurrent use; all parameters are fixed at construction.
type Codec struct {
	secret   []byte
	method   jwt.SigningMethod
	issuer   string
	audience string
}

func NewCodec(cfg config.AuthConfig) (*Codec, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	alg := cfg.JWTAlgorithm
	if alg == "" {
		alg = "HS256"
	}
	method := jwt.GetSigningMethod(alg)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}

	return &Codec{
		secret:   []byte(cfg.JWTSecret),
		method:   method,
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
	}, nil
}

// Encode serializes and signs the claim set. It does not fill in any
// claim values; callers own the full payload.
func (c *Codec) Encode(claims Claims) (string, error) {
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Decode verifies the signature and the required-claim contract against
// the caller-supplied clock. Failures map to exactly one of the sentinel
// errors in errors.go. No clock leeway: a token with exp=T is invalid at
// now=T (half-open validity window).
func (c *Codec) Decode(token string, now time.Time) (Claims, error) {
	var claims Claims

	// Claims validation is done by hand below so that each failure mode
	// surfaces as its own sentinel; the library validator folds them.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	_, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, ErrInvalidSignature
	default:
		return Claims{}, ErrTokenMalformed
	}

	if name := claims.missingRequired(); name != "" {
		return Claims{}, fmt.Errorf("%w: %s", ErrMissingClaim, name)
	}
	if !now.Before(claims.ExpiresAt.Time) {
		return Claims{}, ErrTokenExpired
	}
	if now.Before(claims.NotBefore.Time) {
		return Claims{}, ErrTokenNotYetValid
	}
	if claims.Issuer != c.issuer {
		return Claims{}, ErrWrongIssuer
	}
	if !containsAudience(claims.Audience, c.audience) {
		return Claims{}, ErrWrongAudience
	}

	return claims, nil
}

func containsAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
