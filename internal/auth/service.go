package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"grocery-platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DirectoryUser is the read-model the token service needs from user
// storage. It carries the stored hash; never serialize it outward.
type DirectoryUser struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
}

// UserDirectory is the external lookup the token service depends on.
// Implementations are read-only from this service's perspective.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (DirectoryUser, bool, error)
	FindByID(ctx context.Context, uid string) (DirectoryUser, bool, error)
}

// Service issues access/refresh token pairs and performs refresh rotation.
type Service struct {
	codec      *Codec
	dir        UserDirectory
	accessTTL  time.Duration
	refreshTTL time.Duration

	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(codec *Codec, dir UserDirectory, cfg config.AuthConfig) *Service {
	return &Service{
		codec:      codec,
		dir:        dir,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		clock:      time.Now,
	}
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Issue builds a token for the principal with iat=nbf=now and a fresh jti.
func (s *Service) Issue(p Principal, typ TokenType, now time.Time) (string, error) {
	ttl := s.accessTTL
	if typ == TokenTypeRefresh {
		ttl = s.refreshTTL
	}

	claims := Claims{
		RegisteredClaims: registeredClaims(s.codec, p.ID, now, ttl),
		Email:            p.Email,
		Role:             p.Role,
		TokenType:        typ,
	}
	return s.codec.Encode(claims)
}

// IssuePair issues an access and a refresh token from the same instant.
func (s *Service) IssuePair(p Principal, now time.Time) (TokenPair, error) {
	access, err := s.Issue(p, TokenTypeAccess, now)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.Issue(p, TokenTypeRefresh, now)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Login verifies credentials and issues a fresh pair.
//
// Unknown email, inactive account and password mismatch all return
// ErrInvalidCredentials with no distinguishing detail.
func (s *Service) Login(ctx context.Context, email, password string) (TokenPair, Principal, error) {
	email = NormalizeEmail(email)

	u, ok, err := s.dir.FindByEmail(ctx, email)
	if err != nil {
		return TokenPair{}, Principal{}, fmt.Errorf("user lookup: %w", err)
	}
	if !ok || !u.Active {
		return TokenPair{}, Principal{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return TokenPair{}, Principal{}, ErrInvalidCredentials
	}

	p := Principal{ID: u.ID, Email: u.Email, Role: u.Role}
	pair, err := s.IssuePair(p, s.clock().UTC())
	if err != nil {
		return TokenPair{}, Principal{}, err
	}
	return pair, p, nil
}

// Refresh rotates a refresh token into a new access+refresh pair.
//
// The presented token is NOT invalidated; there is no revocation store,
// so it stays usable until natural expiry. Deployments should keep
// JWT_REFRESH_TTL short accordingly.
func (s *Service) Refresh(ctx context.Context, token string) (TokenPair, error) {
	now := s.clock().UTC()

	claims, err := s.codec.Decode(token, now)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if err := RequireType(claims, TokenTypeRefresh); err != nil {
		return TokenPair{}, err
	}

	u, ok, err := s.dir.FindByID(ctx, claims.Subject)
	if err != nil {
		return TokenPair{}, fmt.Errorf("user lookup: %w", err)
	}
	if !ok || !u.Active {
		return TokenPair{}, ErrUserInactive
	}

	return s.IssuePair(Principal{ID: claims.Subject, Email: claims.Email, Role: claims.Role}, now)
}

// NormalizeEmail is the canonical email form used for directory lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func registeredClaims(c *Codec, sub string, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Audience:  jwt.ClaimStrings{c.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		Subject:   sub,
		ID:        uuid.NewString(),
	}
}
