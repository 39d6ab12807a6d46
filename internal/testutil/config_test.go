package testutil

import (
	"strings"
	"testing"
)

func TestDefaultTestDBConfig(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "")
	t.Setenv("TEST_DB_PORT", "")

	cfg := DefaultTestDBConfig()
	if cfg.Host != "localhost" || cfg.Port != "55432" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	t.Setenv("TEST_DB_PORT", "5432")
	if got := DefaultTestDBConfig().Port; got != "5432" {
		t.Fatalf("expected TEST_DB_PORT to be respected, got %q", got)
	}
}

func TestTestDBConfig_DSN(t *testing.T) {
	cfg := TestDBConfig{Host: "db", Port: "5432", User: "u", Password: "p@ss", DBName: "skills"}

	dsn := cfg.DSN("t_abc")
	if !strings.HasPrefix(dsn, "postgres://u:p%40ss@db:5432/skills?") {
		t.Fatalf("unexpected dsn %q", dsn)
	}
	if !strings.Contains(dsn, "search_path=t_abc") {
		t.Fatalf("expected search_path in %q", dsn)
	}
	if strings.Contains(cfg.DSN(""), "search_path") {
		t.Fatalf("search_path should be omitted when empty")
	}
}

func TestSchemaName(t *testing.T) {
	a, b := schemaName(), schemaName()
	if !strings.HasPrefix(a, "t_") || a == b {
		t.Fatalf("unexpected schema names %q %q", a, b)
	}
}
