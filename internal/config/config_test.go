package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tiliavir/contractor-time-tracker/internal/config"
)

func writeConfig(t *testing.T, body string) (path, dir string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path, dir
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadFile(filepath.Join(dir, "config.json"), dir)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("backend = %q", cfg.Storage.Backend)
	}
	if cfg.Storage.DataDir != filepath.Join(dir, "data") {
		t.Errorf("data dir = %q", cfg.Storage.DataDir)
	}
	if cfg.MileageRate.String() != "0.725" {
		t.Errorf("mileage rate = %s", cfg.MileageRate)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoadFileStripsComments(t *testing.T) {
	path, dir := writeConfig(t, `// header
{
  // pick sqlite
  "storage": {"backend": "sqlite", "sqlite_path": "/tmp/x.db"},
  "mileage_rate": 0.67
}
`)
	cfg, err := config.LoadFile(path, dir)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Storage.Backend != "sqlite" || cfg.Storage.SQLitePath != "/tmp/x.db" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.MileageRate.String() != "0.67" {
		t.Errorf("mileage rate = %s", cfg.MileageRate)
	}
	// Unset fields keep their defaults.
	if cfg.Storage.DataDir != filepath.Join(dir, "data") || cfg.Log.Format != "text" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFileEnvOverrides(t *testing.T) {
	path, dir := writeConfig(t, `{"storage": {"backend": "sqlite"}}`)
	t.Setenv("CTT_STORAGE_BACKEND", "file")
	t.Setenv("CTT_MILEAGE_RATE", "0.70")
	t.Setenv("CTT_LOG_FORMAT", "json")

	cfg, err := config.LoadFile(path, dir)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("backend = %q, want env override", cfg.Storage.Backend)
	}
	if cfg.MileageRate.String() != "0.7" {
		t.Errorf("mileage rate = %s", cfg.MileageRate)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log format = %q", cfg.Log.Format)
	}
}

func TestLoadFileZeroMileageRate(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  string
	}{
		{"file", `{"mileage_rate": 0}`, ""},
		{"env", `{"mileage_rate": 0.67}`, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("CTT_MILEAGE_RATE", tt.env)
			}
			path, dir := writeConfig(t, tt.body)
			cfg, err := config.LoadFile(path, dir)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if !cfg.MileageRate.IsZero() {
				t.Errorf("mileage rate = %s, want 0", cfg.MileageRate)
			}
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{"bad json", `{"storage": `, nil, "parsing config file"},
		{"bad backend", `{"storage": {"backend": "redis"}}`, nil, "invalid storage backend"},
		{"negative rate", `{"mileage_rate": -1}`, nil, "invalid mileage rate"},
		{"bad level", `{"log": {"level": "loud"}}`, nil, "invalid log level"},
		{"bad env rate", `{}`, map[string]string{"CTT_MILEAGE_RATE": "cheap"}, "CTT_MILEAGE_RATE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path, dir := writeConfig(t, tt.body)
			_, err := config.LoadFile(path, dir)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}
