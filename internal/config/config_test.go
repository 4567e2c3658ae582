package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoadConfigDefaultsAndFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "file-test-secret")

	path := writeTestConfig(t, `
server:
  port: "9090"
database:
  dbname: studysphere_test
redis:
  cache_ttl: 5m
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090 from file", cfg.Server.Port)
	}
	if cfg.Database.DBName != "studysphere_test" {
		t.Errorf("Database.DBName = %q, want studysphere_test", cfg.Database.DBName)
	}
	// Untouched values keep their defaults.
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want default localhost", cfg.Database.Host)
	}
	if cfg.CacheTTL().Minutes() != 5 {
		t.Errorf("CacheTTL() = %v, want 5m", cfg.CacheTTL())
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SERVER_PORT", "7777")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")
	t.Setenv("SMTP_PORT", "2525")

	path := writeTestConfig(t, `
server:
  port: "9090"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "7777" {
		t.Errorf("Server.Port = %q, env must win over file", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("JWT.Secret = %q, want env-secret", cfg.JWT.Secret)
	}
	if cfg.SMTP.Port != 2525 {
		t.Errorf("SMTP.Port = %d, want 2525", cfg.SMTP.Port)
	}

	origins := cfg.CORS.AllowedOrigins
	if len(origins) != 2 || origins[0] != "https://app.example.com" || origins[1] != "https://staging.example.com" {
		t.Errorf("CORS.AllowedOrigins = %v, want two trimmed origins", origins)
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	path := writeTestConfig(t, `
server:
  port: "8080"
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error when JWT secret is missing")
	}
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "studysphere"
	cfg.Database.SSLMode = ""

	want := "postgres://app:pw@db.internal:5433/studysphere?sslmode=disable"
	if got := cfg.GetPostgresConnectionString(); got != want {
		t.Errorf("GetPostgresConnectionString() = %q, want %q", got, want)
	}
}
