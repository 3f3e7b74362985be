package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/Tiliavir/contractor-time-tracker/internal/totals"
)

// Config is the root configuration for ctt, stored in ~/.ctt/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Storage StorageConfig `json:"storage"`
	// MileageRate is the reimbursement per mile. Zero turns mileage
	// reimbursement off.
	MileageRate decimal.Decimal `json:"mileage_rate"`
	Log         LogConfig       `json:"log"`
}

// StorageConfig selects where application state is kept.
type StorageConfig struct {
	// Backend is "file" (one JSON file per key) or "sqlite".
	Backend string `json:"backend"`
	// DataDir holds the file backend's JSON files.
	DataDir string `json:"data_dir"`
	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `json:"sqlite_path"`
}

type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level"`
	// Format is text or json.
	Format string `json:"format"`
}

const (
	DefaultBackend   = "file"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	envPrefix = "CTT_"
)

// Dir returns ~/.ctt, the home of the config file and the default data.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ctt"), nil
}

func defaultConfig(dir string) Config {
	return Config{
		Storage: StorageConfig{
			Backend:    DefaultBackend,
			DataDir:    filepath.Join(dir, "data"),
			SQLitePath: filepath.Join(dir, "ctt.db"),
		},
		MileageRate: totals.DefaultMileageRate,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing.
const configTemplate = `// ctt configuration - ~/.ctt/config.json
//
// All settings are optional. Any value can also be overridden with an
// environment variable (or a .env file in the working directory):
// CTT_STORAGE_BACKEND, CTT_DATA_DIR, CTT_SQLITE_PATH, CTT_MILEAGE_RATE,
// CTT_LOG_LEVEL, CTT_LOG_FORMAT.
{
  "storage": {
    // "file" keeps one JSON file per key in data_dir.
    // "sqlite" keeps the same keys in a single database file.
    "backend": "file",

    // Empty values default to ~/.ctt/data and ~/.ctt/ctt.db.
    "data_dir": "",
    "sqlite_path": ""
  },

  // Mileage reimbursement per mile (IRS 2026 standard rate). 0 turns it off.
  "mileage_rate": 0.725,

  "log": {
    // debug, info, warn or error. Logs go to stderr.
    "level": "warn",
    // text or json
    "format": "text"
  }
}
`

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.ctt/config.json, creating it with annotated defaults on first
// run, then applies .env and CTT_* environment overrides.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return defaultConfig("."), err
	}
	path := filepath.Join(dir, "config.json")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}
	return LoadFile(path, dir)
}

// LoadFile reads the config at path. Relative defaults are placed under dir.
// A missing file yields the defaults. Environment overrides are applied last.
func LoadFile(path, dir string) (Config, error) {
	cfg := defaultConfig(dir)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		var fileCfg layer
		if err := json.Unmarshal(stripLineComments(data), &fileCfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
		cfg.merge(fileCfg)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// layer is one source of settings. MileageRate is nullable so an explicit
// zero is told apart from an unset value.
type layer struct {
	Config
	MileageRate decimal.NullDecimal `json:"mileage_rate"`
}

// merge copies every set field of o into c.
func (c *Config) merge(o layer) {
	if o.Storage.Backend != "" {
		c.Storage.Backend = o.Storage.Backend
	}
	if o.Storage.DataDir != "" {
		c.Storage.DataDir = expandHome(o.Storage.DataDir)
	}
	if o.Storage.SQLitePath != "" {
		c.Storage.SQLitePath = expandHome(o.Storage.SQLitePath)
	}
	if o.MileageRate.Valid {
		c.MileageRate = o.MileageRate.Decimal
	}
	if o.Log.Level != "" {
		c.Log.Level = o.Log.Level
	}
	if o.Log.Format != "" {
		c.Log.Format = o.Log.Format
	}
}

func (c *Config) applyEnv() error {
	env := layer{Config: Config{
		Storage: StorageConfig{
			Backend:    getEnv("STORAGE_BACKEND"),
			DataDir:    getEnv("DATA_DIR"),
			SQLitePath: getEnv("SQLITE_PATH"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL"),
			Format: getEnv("LOG_FORMAT"),
		},
	}}
	if v := getEnv("MILEAGE_RATE"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("invalid %sMILEAGE_RATE %q: %w", envPrefix, v, err)
		}
		env.MileageRate = decimal.NewNullDecimal(rate)
	}
	c.merge(env)
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string
	switch c.Storage.Backend {
	case "file", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("invalid storage backend %q: must be file or sqlite", c.Storage.Backend))
	}
	if c.MileageRate.IsNegative() {
		problems = append(problems, fmt.Sprintf("invalid mileage rate %s: must not be negative", c.MileageRate))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format %q: must be text or json", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + key))
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
