package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected default token TTL 24h, got %s", cfg.TokenTTL)
	}
	if cfg.Mongo.Database != "user_directory" {
		t.Fatalf("unexpected default database: %s", cfg.Mongo.Database)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected default redis addr: %s", cfg.Redis.Addr)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("MONGO_DB", "directory_test")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.JWTSecret != "super-secret" {
		t.Fatalf("jwt secret not read from env")
	}
	if cfg.TokenTTL != 15*time.Minute {
		t.Fatalf("expected token TTL 15m, got %s", cfg.TokenTTL)
	}
	if cfg.Mongo.Database != "directory_test" {
		t.Fatalf("unexpected database: %s", cfg.Mongo.Database)
	}
}
