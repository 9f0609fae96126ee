package config

import (
	"testing"
	"time"
)

func clearDataEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATA_FILE", "DATA_SHEET", "DATA_COLUMNS", "DATA_HEADER_ROW", "PORT", "SHUTDOWN_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearDataEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Data.File != "Final.Project.Data.xlsx" {
		t.Errorf("default data file = %q", cfg.Data.File)
	}
	if cfg.Data.Sheet != "Sheet1" {
		t.Errorf("default sheet = %q", cfg.Data.Sheet)
	}
	if cfg.Data.Columns != "F:N" {
		t.Errorf("default column range = %q", cfg.Data.Columns)
	}
	if cfg.Data.HeaderRow != 2 {
		t.Errorf("default header row = %d", cfg.Data.HeaderRow)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("default shutdown timeout = %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("default log level = %q", cfg.LogLevel)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearDataEnv(t)
	t.Setenv("DATA_FILE", "data/cities.xlsx")
	t.Setenv("DATA_SHEET", "Metrics")
	t.Setenv("DATA_COLUMNS", "A:D")
	t.Setenv("DATA_HEADER_ROW", "0")
	t.Setenv("PORT", "9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Data.File != "data/cities.xlsx" {
		t.Errorf("data file = %q", cfg.Data.File)
	}
	if cfg.Data.Sheet != "Metrics" {
		t.Errorf("sheet = %q", cfg.Data.Sheet)
	}
	if cfg.Data.Columns != "A:D" {
		t.Errorf("column range = %q", cfg.Data.Columns)
	}
	if cfg.Data.HeaderRow != 0 {
		t.Errorf("header row = %d", cfg.Data.HeaderRow)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"column range without colon", "DATA_COLUMNS", "FN"},
		{"negative header row", "DATA_HEADER_ROW", "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearDataEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatal("expected a configuration error")
			}
		})
	}
}

func TestLoadIgnoresMalformedOverrides(t *testing.T) {
	clearDataEnv(t)
	t.Setenv("DATA_HEADER_ROW", "not-a-number")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Data.HeaderRow != 2 {
		t.Errorf("malformed int should fall back to default, got %d", cfg.Data.HeaderRow)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("malformed duration should fall back to default, got %v", cfg.Server.ShutdownTimeout)
	}
}
