// Package config resolves application settings from built-in defaults, an
// optional TOML file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zapcore"
)

const (
	AppDir       = "ekwiwalent"
	ConfigFile   = "config.toml"
	DatabaseFile = "ekwiwalent.db"
	AuthFile     = "auth.db"
	LogFile      = "ekwiwalent.log"
)

// Environment variables, read after .env has been loaded.
const (
	EnvDB       = "EKWIWALENT_DB"
	EnvAuthDB   = "EKWIWALENT_AUTH_DB"
	EnvLog      = "EKWIWALENT_LOG"
	EnvLogLevel = "EKWIWALENT_LOG_LEVEL"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Rates    []RateConfig   `toml:"rates"`
}

type DatabaseConfig struct {
	Path     string `toml:"path"`
	AuthPath string `toml:"auth_path"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // json or console
	Path   string `toml:"path"`
}

// RateConfig is one operation type of the compensation catalog.
type RateConfig struct {
	Key   string `toml:"key"`
	Label string `toml:"label"`
	// Rate is a decimal string such as "12.35" so money never passes
	// through binary floating point.
	Rate string `toml:"rate"`
}

// DefaultDir returns ~/.config/ekwiwalent (or the platform equivalent).
func DefaultDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, AppDir), nil
}

// Default returns the built-in configuration with files placed under dir.
func Default(dir string) *Config {
	cat := brigade.DefaultCatalog()
	rates := make([]RateConfig, len(cat))
	for i, t := range cat {
		rates[i] = RateConfig{Key: t.Key, Label: t.Label, Rate: t.Rate.String()}
	}
	return &Config{
		Database: DatabaseConfig{
			Path:     filepath.Join(dir, DatabaseFile),
			AuthPath: filepath.Join(dir, AuthFile),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Path:   filepath.Join(dir, LogFile),
		},
		Rates: rates,
	}
}

// Load returns the defaults for dir overlaid with the TOML file at path. A
// missing file is not an error.
func Load(path, dir string) (*Config, error) {
	cfg := Default(dir)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.merge(&file)
	return cfg, nil
}

// merge copies every non-empty field of o onto c. A rates list replaces the
// catalog as a whole.
func (c *Config) merge(o *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Database.Path, o.Database.Path)
	set(&c.Database.AuthPath, o.Database.AuthPath)
	set(&c.Log.Level, o.Log.Level)
	set(&c.Log.Format, o.Log.Format)
	set(&c.Log.Path, o.Log.Path)
	if len(o.Rates) > 0 {
		c.Rates = o.Rates
	}
}

// ApplyEnv overrides file settings with EKWIWALENT_* variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDB); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvAuthDB); v != "" {
		c.Database.AuthPath = v
	}
	if v := os.Getenv(EnvLog); v != "" {
		c.Log.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, errors.New("database.path is empty"))
	}
	if strings.TrimSpace(c.Database.AuthPath) == "" {
		errs = append(errs, errors.New("database.auth_path is empty"))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("log.format %q: want json or console", c.Log.Format))
	}

	if len(c.Rates) == 0 {
		errs = append(errs, errors.New("rates: catalog is empty"))
	}
	keys := make(map[string]bool)
	labels := make(map[string]bool)
	for i, r := range c.Rates {
		switch {
		case strings.TrimSpace(r.Key) == "":
			errs = append(errs, fmt.Errorf("rates[%d]: key is empty", i))
		case keys[r.Key]:
			errs = append(errs, fmt.Errorf("rates[%d]: duplicate key %q", i, r.Key))
		}
		keys[r.Key] = true

		switch {
		case strings.TrimSpace(r.Label) == "":
			errs = append(errs, fmt.Errorf("rates[%d]: label is empty", i))
		case labels[r.Label]:
			errs = append(errs, fmt.Errorf("rates[%d]: duplicate label %q", i, r.Label))
		}
		labels[r.Label] = true

		rate, err := decimal.NewFromString(strings.TrimSpace(r.Rate))
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("rates[%d]: rate %q is not a decimal number", i, r.Rate))
		case !rate.IsPositive():
			errs = append(errs, fmt.Errorf("rates[%d]: rate must be positive, got %s", i, r.Rate))
		}
	}
	return errors.Join(errs...)
}

// Catalog converts the configured rates into the operation type catalog.
// Call it on a validated config; an unparsable rate becomes zero.
func (c *Config) Catalog() brigade.Catalog {
	cat := make(brigade.Catalog, len(c.Rates))
	for i, r := range c.Rates {
		rate, _ := decimal.NewFromString(strings.TrimSpace(r.Rate))
		cat[i] = brigade.OperationType{Key: r.Key, Label: r.Label, Rate: rate}
	}
	return cat
}

// Save writes the configuration as TOML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
