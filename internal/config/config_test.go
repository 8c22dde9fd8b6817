package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("FRONTEND_BASE_URL", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("SESSION_FILE", "")

	cfg := Load()
	if cfg.BaseURL != "http://localhost:8080" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.FrontendURL != "http://localhost:5173" {
		t.Fatalf("FrontendURL = %q", cfg.FrontendURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.SessionFile == "" {
		t.Fatal("SessionFile should never be empty")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://events.campus.edu")
	t.Setenv("HTTP_TIMEOUT", "2s")
	t.Setenv("SESSION_FILE", "/tmp/sess.json")

	cfg := Load()
	if cfg.BaseURL != "https://events.campus.edu" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 2*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.SessionFile != "/tmp/sess.json" {
		t.Fatalf("SessionFile = %q", cfg.SessionFile)
	}
}

func TestBadTimeoutFallsBack(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")
	if cfg := Load(); cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
}
