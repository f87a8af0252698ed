package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/carelens_test")
	defer os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.DBMaxConns != 20 {
		t.Errorf("expected default DB_MAX_CONNS 20, got %d", cfg.DBMaxConns)
	}
	if cfg.TopActions != 3 {
		t.Errorf("expected default TOP_ACTIONS 3, got %d", cfg.TopActions)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	os.Unsetenv("DATABASE_URL")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestResolvedAuthMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit mode wins", Config{AuthMode: "jwt", Env: "development"}, "jwt"},
		{"development inferred", Config{Env: "development"}, "development"},
		{"production infers jwt", Config{Env: "production"}, "jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ResolvedAuthMode(); got != tt.want {
				t.Errorf("ResolvedAuthMode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{Env: "production", TopActions: 3}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for jwt mode without JWT_SECRET")
	}

	cfg.JWTSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.TopActions = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-positive TOP_ACTIONS")
	}

	dev := Config{Env: "development", TopActions: 3}
	if err := dev.Validate(); err != nil {
		t.Errorf("development mode should not require a secret: %v", err)
	}
}
