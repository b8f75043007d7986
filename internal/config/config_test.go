package config

import (
	"testing"
	"time"
)

func TestParseIntEnv(t *testing.T) {
	t.Setenv("TEST_INT", "42")

	got, err := parseIntEnv("TEST_INT", 7)
	if err != nil || got != 42 {
		t.Fatalf("expected 42, got %d (err=%v)", got, err)
	}

	got, err = parseIntEnv("TEST_INT_MISSING", 7)
	if err != nil || got != 7 {
		t.Fatalf("expected fallback 7, got %d (err=%v)", got, err)
	}

	t.Setenv("TEST_INT_BAD", "abc")
	if _, err := parseIntEnv("TEST_INT_BAD", 7); err == nil {
		t.Fatal("expected error for non-integer value")
	}

	t.Setenv("TEST_INT_ZERO", "0")
	if _, err := parseIntEnv("TEST_INT_ZERO", 7); err == nil {
		t.Fatal("expected error for non-positive value")
	}
}

func TestParseDurationEnv(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")

	got, err := parseDurationEnv("TEST_DURATION", time.Second)
	if err != nil || got != 90*time.Second {
		t.Fatalf("expected 90s, got %s (err=%v)", got, err)
	}

	t.Setenv("TEST_DURATION_BAD", "soon")
	if _, err := parseDurationEnv("TEST_DURATION_BAD", time.Second); err == nil {
		t.Fatal("expected error for unparseable duration")
	}
}

// TestHasAPIKey treats whitespace-only keys as absent.
func TestHasAPIKey(t *testing.T) {
	if (AIConfig{APIKey: "  "}).HasAPIKey() {
		t.Fatal("expected blank key to count as absent")
	}
	if !(AIConfig{APIKey: "key"}).HasAPIKey() {
		t.Fatal("expected key to be detected")
	}
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("ENV_FILE", "testdata/nonexistent.env")

	// A missing explicit env file is a load failure.
	if _, err := Load(); err == nil {
		t.Fatal("expected error for a missing ENV_FILE")
	}

	t.Setenv("ENV_FILE", "")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is empty")
	}

	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected load to succeed without an API key, got %v", err)
	}
	if cfg.AI.HasAPIKey() {
		t.Fatal("expected API key to be reported absent")
	}
	if cfg.AI.Model != "gemini-2.5-flash" {
		t.Fatalf("unexpected default model: %s", cfg.AI.Model)
	}
}
