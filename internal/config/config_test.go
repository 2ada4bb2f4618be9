package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("/tmp/ekw")
	assert.Equal(t, filepath.Join("/tmp/ekw", DatabaseFile), cfg.Database.Path)
	assert.Equal(t, filepath.Join("/tmp/ekw", AuthFile), cfg.Database.AuthPath)
	assert.Equal(t, "info", cfg.Log.Level)
	require.Len(t, cfg.Rates, 4)
	require.NoError(t, cfg.Validate())

	cat := cfg.Catalog()
	fire, ok := cat.Lookup("fire")
	require.True(t, ok)
	assert.True(t, fire.Rate.Equal(decimal.NewFromInt(25)))
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "nope.toml"), dir)
	require.NoError(t, err)
	assert.Equal(t, Default(dir), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	data := `
[database]
path = "/data/osp.db"

[log]
level = "debug"

[[rates]]
key = "fire"
label = "Akcja ratownicza"
rate = "30"

[[rates]]
key = "drill"
label = "Ćwiczenia"
rate = "12.5"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "/data/osp.db", cfg.Database.Path)
	assert.Equal(t, filepath.Join(dir, AuthFile), cfg.Database.AuthPath, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	cat := cfg.Catalog()
	require.Len(t, cat, 2)
	assert.True(t, cat[0].Rate.Equal(decimal.NewFromInt(30)))
	assert.True(t, cat[1].Rate.Equal(decimal.RequireFromString("12.5")))
	require.NoError(t, cfg.Validate())
}

func TestRatesStayExact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	data := `
[[rates]]
key = "fire"
label = "Akcja ratownicza"
rate = "12.35"

[[rates]]
key = "guard"
label = "Dyżur"
rate = "0.1"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	cat := cfg.Catalog()
	assert.Equal(t, "12.35", cat[0].Rate.String())
	assert.Equal(t, "0.1", cat[1].Rate.String())
	// 3 × 0.1 is 0.3 only without a float round trip.
	assert.True(t, cat[1].Rate.Mul(decimal.NewFromInt(3)).Equal(decimal.RequireFromString("0.3")))

	require.NoError(t, cfg.Save(path))
	again, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "12.35", again.Rates[0].Rate)
}

func TestLoadInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("[database\npath ="), 0o644))

	_, err := Load(path, dir)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDB, "/env/osp.db")
	t.Setenv(EnvAuthDB, "/env/auth.db")
	t.Setenv(EnvLog, "/env/osp.log")
	t.Setenv(EnvLogLevel, "warn")

	cfg := Default(t.TempDir())
	cfg.ApplyEnv()
	assert.Equal(t, "/env/osp.db", cfg.Database.Path)
	assert.Equal(t, "/env/auth.db", cfg.Database.AuthPath)
	assert.Equal(t, "/env/osp.log", cfg.Log.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"empty db", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"no rates", func(c *Config) { c.Rates = nil }, "catalog is empty"},
		{"duplicate key", func(c *Config) { c.Rates[1].Key = c.Rates[0].Key }, "duplicate key"},
		{"duplicate label", func(c *Config) { c.Rates[3].Label = c.Rates[2].Label }, "duplicate label"},
		{"zero rate", func(c *Config) { c.Rates[0].Rate = "0" }, "rate must be positive"},
		{"unparsable rate", func(c *Config) { c.Rates[0].Rate = "25,50" }, "not a decimal number"},
		{"empty rate", func(c *Config) { c.Rates[0].Rate = "" }, "not a decimal number"},
		{"empty label", func(c *Config) { c.Rates[0].Label = " " }, "label is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(t.TempDir())
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Default(t.TempDir())
	cfg.Log.Format = "xml"
	cfg.Rates[0].Rate = "-1"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
	assert.Contains(t, err.Error(), "rate must be positive")
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", ConfigFile)

	cfg := Default(dir)
	cfg.Log.Level = "debug"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
