package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"grocery-platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(config.AuthConfig{
		JWTSecret:    "secret",
		JWTAlgorithm: "HS256",
		JWTIssuer:    "gms",
		JWTAudience:  "gms.api",
	})
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	return c
}

func testClaims(now time.Time, ttl time.Duration) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "gms",
			Audience:  jwt.ClaimStrings{"gms.api"},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   "user-1",
			ID:        "jti-1",
		},
		Email:     "sam@supply.com",
		Role:      RoleSupplier,
		TokenType: TokenTypeAccess,
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := testCodec(t)
	now := time.Unix(1700000000, 0).UTC()

	token, err := c.Encode(testClaims(now, 30*time.Minute))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := c.Decode(token, now)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Subject != "user-1" || got.Email != "sam@supply.com" || got.Role != RoleSupplier {
		t.Fatalf("unexpected claims: %+v", got)
	}
	if got.TokenType != TokenTypeAccess {
		t.Fatalf("expected access typ, got %q", got.TokenType)
	}
	if !got.ExpiresAt.Time.Equal(now.Add(30 * time.Minute)) {
		t.Fatalf("unexpected exp: %v", got.ExpiresAt.Time)
	}
}

func TestCodec_ExpiryBounds(t *testing.T) {
	c := testCodec(t)
	issued := time.Unix(1700000000, 0).UTC()
	ttl := 30 * time.Minute

	token, err := c.Encode(testClaims(issued, ttl))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Valid over [issued, issued+ttl).
	for _, at := range []time.Time{issued, issued.Add(ttl / 2), issued.Add(ttl - time.Second)} {
		if _, err := c.Decode(token, at); err != nil {
			t.Fatalf("expected valid at %v, got %v", at, err)
		}
	}
	// Invalid from issued+ttl onward.
	for _, at := range []time.Time{issued.Add(ttl), issued.Add(ttl + time.Hour)} {
		if _, err := c.Decode(token, at); !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired at %v, got %v", at, err)
		}
	}
}

func TestCodec_NotYetValid(t *testing.T) {
	c := testCodec(t)
	issued := time.Unix(1700000000, 0).UTC()

	token, err := c.Encode(testClaims(issued, time.Hour))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := c.Decode(token, issued.Add(-time.Second)); !errors.Is(err, ErrTokenNotYetValid) {
		t.Fatalf("expected ErrTokenNotYetValid, got %v", err)
	}
}

func TestCodec_SignatureTamperEvidence(t *testing.T) {
	c := testCodec(t)
	now := time.Unix(1700000000, 0).UTC()

	token, err := c.Encode(testClaims(now, time.Hour))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	segs := strings.Split(token, ".")
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	sig := []byte(segs[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := segs[0] + "." + segs[1] + "." + string(sig)

	if _, err := c.Decode(tampered, now); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	c := testCodec(t)
	other, err := NewCodec(config.AuthConfig{JWTSecret: "other", JWTIssuer: "gms", JWTAudience: "gms.api"})
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	now := time.Unix(1700000000, 0).UTC()

	token, err := other.Encode(testClaims(now, time.Hour))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := c.Decode(token, now); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	c := testCodec(t)
	now := time.Unix(1700000000, 0).UTC()

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := c.Decode(raw, now); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("expected ErrTokenMalformed for %q, got %v", raw, err)
		}
	}
}

func TestCodec_MissingRequiredClaims(t *testing.T) {
	c := testCodec(t)
	now := time.Unix(1700000000, 0).UTC()

	cases := []struct {
		name   string
		mutate func(*Claims)
	}{
		{"iss", func(cl *Claims) { cl.Issuer = "" }},
		{"aud", func(cl *Claims) { cl.Audience = nil }},
		{"iat", func(cl *Claims) { cl.IssuedAt = nil }},
		{"nbf", func(cl *Claims) { cl.NotBefore = nil }},
		{"exp", func(cl *Claims) { cl.ExpiresAt = nil }},
		{"sub", func(cl *Claims) { cl.Subject = "" }},
		{"typ", func(cl *Claims) { cl.TokenType = "" }},
	}
	for _, tc := range cases {
		cl := testClaims(now, time.Hour)
		tc.mutate(&cl)
		token, err := c.Encode(cl)
		if err != nil {
			t.Fatalf("%s: encode: %v", tc.name, err)
		}
		if _, err := c.Decode(token, now); !errors.Is(err, ErrMissingClaim) {
			t.Fatalf("%s: expected ErrMissingClaim, got %v", tc.name, err)
		}
	}
}

func TestCodec_WrongIssuerAndAudience(t *testing.T) {
	c := testCodec(t)
	now := time.Unix(1700000000, 0).UTC()

	cl := testClaims(now, time.Hour)
	cl.Issuer = "someone-else"
	token, err := c.Encode(cl)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := c.Decode(token, now); !errors.Is(err, ErrWrongIssuer) {
		t.Fatalf("expected ErrWrongIssuer, got %v", err)
	}

	cl = testClaims(now, time.Hour)
	cl.Audience = jwt.ClaimStrings{"other.api"}
	token, err = c.Encode(cl)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := c.Decode(token, now); !errors.Is(err, ErrWrongAudience) {
		t.Fatalf("expected ErrWrongAudience, got %v", err)
	}
}
