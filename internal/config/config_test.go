package config

import (
	"testing"
	"time"
)

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_ProductionRejectsMemoryBackend(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "production", Port: 8080},
		Store: StoreConfig{Backend: "memory"},
		Auth:  AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production with memory backend")
	}
}

func TestValidate_LocalDefaults(t *testing.T) {
	c := Config{
		App:  AppConfig{Env: "local", Port: 8080},
		Auth: AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.Store.Backend != "memory" {
		t.Fatalf("expected memory backend default, got %q", c.Store.Backend)
	}
	if c.Auth.JWTAlgorithm != "HS256" {
		t.Fatalf("expected HS256 default, got %q", c.Auth.JWTAlgorithm)
	}
	if c.Auth.JWTIssuer != "gms" || c.Auth.JWTAudience != "gms.api" {
		t.Fatalf("unexpected issuer/audience defaults: %q %q", c.Auth.JWTIssuer, c.Auth.JWTAudience)
	}
	if c.Auth.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m access TTL default, got %v", c.Auth.AccessTokenTTL)
	}
}

func TestValidate_PostgresDefaultsSSLMode(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "local", Port: 8080},
		Store: StoreConfig{Backend: "postgres"},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "gms"},
		Auth:  AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
}

func TestValidate_RefreshTTLMustExceedAccessTTL(t *testing.T) {
	c := Config{
		App:  AppConfig{Env: "local", Port: 8080},
		Auth: AuthConfig{JWTSecret: "secret", AccessTokenTTL: time.Hour, RefreshTokenTTL: time.Hour},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for refresh TTL <= access TTL")
	}
}

func TestValidate_RejectsUnknownAlgorithm(t *testing.T) {
	c := Config{
		App:  AppConfig{Env: "local", Port: 8080},
		Auth: AuthConfig{JWTSecret: "secret", JWTAlgorithm: "RS256"},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for unsupported algorithm")
	}
}
