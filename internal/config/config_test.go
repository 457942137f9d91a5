package config

import (
	"strings"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("default config should validate cleanly, got: %v", ValidationErrors(errs))
	}
}

func TestDefault_Values(t *testing.T) {
	cfg := Default()

	if cfg.API.BaseURL != "http://localhost:3000/api" {
		t.Errorf("unexpected default base URL: %s", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 10 {
		t.Errorf("unexpected default timeout: %d", cfg.API.TimeoutSeconds)
	}
	if cfg.TUI.Theme != "default" {
		t.Errorf("unexpected default theme: %s", cfg.TUI.Theme)
	}
	if !cfg.Serve.Seed {
		t.Error("serve.seed should default to true")
	}
}

func TestValidate_BadBaseURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no scheme", "localhost:3000/api"},
		{"garbage", "://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.API.BaseURL = tt.url

			errs := cfg.Validate()
			if len(errs) == 0 {
				t.Fatalf("expected validation error for base URL %q", tt.url)
			}
			if errs[0].Field != "api.base_url" {
				t.Errorf("expected api.base_url error, got %s", errs[0].Field)
			}
		})
	}
}

func TestValidate_Timeout(t *testing.T) {
	cfg := Default()
	cfg.API.TimeoutSeconds = 0

	errs := cfg.Validate()
	if len(errs) != 1 || errs[0].Field != "api.timeout_seconds" {
		t.Errorf("expected single api.timeout_seconds error, got %v", errs)
	}
}

func TestValidate_Theme(t *testing.T) {
	cfg := Default()
	cfg.TUI.Theme = "solarized"

	errs := cfg.Validate()
	if len(errs) != 1 || errs[0].Field != "tui.theme" {
		t.Errorf("expected single tui.theme error, got %v", errs)
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"

	errs := cfg.Validate()
	if len(errs) != 1 || errs[0].Field != "logging.level" {
		t.Errorf("expected single logging.level error, got %v", errs)
	}

	// Case-insensitive levels are accepted.
	cfg.Logging.Level = "DEBUG"
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("uppercase level should be accepted, got %v", errs)
	}
}

func TestValidationErrors_Message(t *testing.T) {
	errs := ValidationErrors{
		{Field: "api.base_url", Value: "", Message: "must not be empty"},
		{Field: "serve.addr", Value: "", Message: "must not be empty"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("expected error count in message, got %q", msg)
	}
	if !strings.Contains(msg, "api.base_url") || !strings.Contains(msg, "serve.addr") {
		t.Errorf("expected both fields in message, got %q", msg)
	}
}

func TestAPIConfig_Timeout(t *testing.T) {
	cfg := APIConfig{TimeoutSeconds: 15}
	if cfg.Timeout().Seconds() != 15 {
		t.Errorf("unexpected timeout duration: %v", cfg.Timeout())
	}
}

func TestStorageConfig_ResolveDir(t *testing.T) {
	s := StorageConfig{Dir: "/tmp/hottake-test"}
	if s.ResolveDir() != "/tmp/hottake-test" {
		t.Errorf("absolute dir should be returned as-is, got %s", s.ResolveDir())
	}

	s = StorageConfig{}
	if s.ResolveDir() == "" {
		t.Error("empty dir should resolve to a default, not empty string")
	}
}
