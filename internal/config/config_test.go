package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Env != "dev" {
		t.Fatalf("got env %q, want dev", cfg.Env)
	}

	if cfg.Port != 8080 {
		t.Fatalf("got port %d, want 8080", cfg.Port)
	}

	if cfg.DBPoolSize != 10 {
		t.Fatalf("got pool size %d, want 10", cfg.DBPoolSize)
	}

	if cfg.StoreTimeout != 30*time.Second {
		t.Fatalf("got store timeout %v, want 30s", cfg.StoreTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_POOL_SIZE", "25")
	t.Setenv("STORE_TIMEOUT", "5s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/mail?sslmode=require")

	cfg := Load()

	if cfg.Env != "prod" {
		t.Fatalf("got env %q, want prod", cfg.Env)
	}

	if cfg.Port != 9090 {
		t.Fatalf("got port %d, want 9090", cfg.Port)
	}

	if cfg.DBPoolSize != 25 {
		t.Fatalf("got pool size %d, want 25", cfg.DBPoolSize)
	}

	if cfg.StoreTimeout != 5*time.Second {
		t.Fatalf("got store timeout %v, want 5s", cfg.StoreTimeout)
	}

	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("got origins %v", cfg.AllowedOrigins)
	}

	if cfg.DBURL != "postgres://u:p@db:5432/mail?sslmode=require" {
		t.Fatalf("DATABASE_URL should take precedence, got %q", cfg.DBURL)
	}
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("STORE_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Port != 8080 {
		t.Fatalf("got port %d, want fallback 8080", cfg.Port)
	}

	if cfg.StoreTimeout != 30*time.Second {
		t.Fatalf("got store timeout %v, want fallback 30s", cfg.StoreTimeout)
	}
}
