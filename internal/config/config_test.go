package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/flatscout")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.HTTPPort)
	}
	if !cfg.RunMigrations {
		t.Fatalf("expected migrations enabled by default")
	}
	if cfg.MatchRateWindow() != time.Minute {
		t.Fatalf("expected 1m window, got %v", cfg.MatchRateWindow())
	}
	if cfg.JWTAccessTTL() != 15*time.Minute {
		t.Fatalf("expected 15m access ttl, got %v", cfg.JWTAccessTTL())
	}
}

func TestLoadConfig_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when DATABASE_URL is empty")
	}
}

func TestAllowedOrigins_MergesFrontendURL(t *testing.T) {
	cfg := &Config{
		FrontendURL:        "https://flatscout.app/",
		CORSAllowedOrigins: []string{"http://localhost:3000", " https://flatscout.app", ""},
	}
	got := cfg.AllowedOrigins()
	if len(got) != 2 {
		t.Fatalf("expected 2 origins, got %v", got)
	}
	if got[0] != "https://flatscout.app" || got[1] != "http://localhost:3000" {
		t.Fatalf("unexpected origins: %v", got)
	}
}
