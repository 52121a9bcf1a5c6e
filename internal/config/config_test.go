package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"server": {"host": "0.0.0.0", "port": 8080},
		"database": {"host": "db", "port": 5432, "user": "app", "password": "secret", "dbname": "storefront", "sslmode": "disable"},
		"redis": {"host": "cache", "port": 6379},
		"commerce": {"base_url": "https://api.example.com", "api_token": "tok", "form_identifier": "order-form", "payment_account": "stripe-payment"},
		"cart": {"ttl_hours": 48}
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Fatalf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Commerce.BaseURL != "https://api.example.com" {
		t.Fatalf("unexpected base url %s", cfg.Commerce.BaseURL)
	}
	if cfg.Cart.TTL() != 48*time.Hour {
		t.Fatalf("expected 48h cart ttl, got %s", cfg.Cart.TTL())
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{"commerce": {"base_url": "https://api.example.com"}}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Commerce.Language != "en_US" {
		t.Fatalf("expected default language, got %s", cfg.Commerce.Language)
	}
	if cfg.Commerce.SessionKind != "session" {
		t.Fatalf("expected default session kind, got %s", cfg.Commerce.SessionKind)
	}
	if cfg.Commerce.Timeout() != 10*time.Second {
		t.Fatalf("expected default timeout, got %s", cfg.Commerce.Timeout())
	}
	if cfg.Cart.TTL() != 7*24*time.Hour {
		t.Fatalf("expected default cart ttl, got %s", cfg.Cart.TTL())
	}
	if cfg.Cart.CheckoutLockTTL() != 30*time.Second {
		t.Fatalf("expected default lock ttl, got %s", cfg.Cart.CheckoutLockTTL())
	}
	if cfg.Cart.AttemptRetention() != 90*24*time.Hour {
		t.Fatalf("expected default retention, got %s", cfg.Cart.AttemptRetention())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "app",
		Password: "secret",
		DBName:   "storefront",
		SSLMode:  "disable",
	}

	want := "host=db port=5432 user=app password=secret dbname=storefront sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
