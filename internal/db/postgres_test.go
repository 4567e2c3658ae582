package db

import (
	"testing"
	"time"

	"github.com/studysphere/backend/internal/config"
)

func testDatabaseConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = "5433"
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.DBName = "studysphere"
	cfg.Database.SSLMode = "disable"
	cfg.Database.MaxOpenConns = 30
	cfg.Database.MaxIdleConns = 8
	cfg.Database.ConnMaxLifetime = "45m"
	return cfg
}

func TestBuildPoolConfig(t *testing.T) {
	cfg := testDatabaseConfig()

	poolConfig, err := buildPoolConfig(cfg)
	if err != nil {
		t.Fatalf("buildPoolConfig() error = %v", err)
	}

	if poolConfig.MaxConns != 30 {
		t.Errorf("MaxConns = %d, want 30", poolConfig.MaxConns)
	}
	if poolConfig.MinConns != 8 {
		t.Errorf("MinConns = %d, want 8", poolConfig.MinConns)
	}
	if poolConfig.MaxConnLifetime != 45*time.Minute {
		t.Errorf("MaxConnLifetime = %v, want 45m", poolConfig.MaxConnLifetime)
	}
	if poolConfig.ConnConfig.Database != "studysphere" {
		t.Errorf("Database = %q, want studysphere", poolConfig.ConnConfig.Database)
	}
	if poolConfig.ConnConfig.Host != "db.internal" {
		t.Errorf("Host = %q, want db.internal", poolConfig.ConnConfig.Host)
	}
}

func TestBuildPoolConfigLifetimeFallback(t *testing.T) {
	cfg := testDatabaseConfig()
	cfg.Database.ConnMaxLifetime = "not-a-duration"

	poolConfig, err := buildPoolConfig(cfg)
	if err != nil {
		t.Fatalf("buildPoolConfig() error = %v", err)
	}
	if poolConfig.MaxConnLifetime != time.Hour {
		t.Errorf("MaxConnLifetime = %v, want the 1h fallback", poolConfig.MaxConnLifetime)
	}
}

func TestBuildPoolConfigRejectsBadConnString(t *testing.T) {
	cfg := testDatabaseConfig()
	cfg.Database.Port = "not-a-port"

	if _, err := buildPoolConfig(cfg); err == nil {
		t.Fatal("expected error for malformed connection string")
	}
}
