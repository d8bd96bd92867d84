package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"orarctl/pkg/scraper"

	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. ORAR_SERVER_PORT.
const envPrefix = "ORAR"

// Config holds everything orarctl reads from ~/.orarctl.yaml and the environment.
type Config struct {
	Source      SourceConfig      `mapstructure:"source"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Export      ExportConfig      `mapstructure:"export"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
}

type SourceConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	UserAgent   string        `mapstructure:"user_agent"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"` // 0 disables the timeout
}

type CacheConfig struct {
	Size int `mapstructure:"size"`
}

type ServerConfig struct {
	Port            string   `mapstructure:"port"`
	Env             string   `mapstructure:"env"`
	RateLimitPerMin int      `mapstructure:"rate_limit_per_min"` // 0 disables rate limiting
	RateLimitBurst  int      `mapstructure:"rate_limit_burst"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	TrustedProxies  []string `mapstructure:"trusted_proxies"` // X-Forwarded-For is ignored from anyone else
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

type ExportConfig struct {
	SemesterStart string `mapstructure:"semester_start"` // YYYY-MM-DD, Monday of week 1
	Weeks         int    `mapstructure:"weeks"`
	Timezone      string `mapstructure:"timezone"`
}

// PreferencesConfig holds user choices saved by the CLI and TUI.
type PreferencesConfig struct {
	SavedGroups []string `mapstructure:"saved_groups"`
	AccentColor string   `mapstructure:"accent_color"`
}

// Default returns the configuration used when no file or env override is present.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			BaseURL:   scraper.DefaultBaseURL,
			UserAgent: "orarctl/1.0",
		},
		Cache: CacheConfig{Size: scraper.DefaultCacheSize},
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			RateLimitBurst: 10,
			AllowedOrigins: []string{"*"},
			TrustedProxies: []string{},
		},
		Log: LogConfig{Level: "info", Format: "console"},
		Export: ExportConfig{
			SemesterStart: "2025-09-29",
			Weeks:         14,
			Timezone:      "Europe/Bucharest",
		},
		Preferences: PreferencesConfig{
			SavedGroups: []string{},
			AccentColor: "99",
		},
	}
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// DefaultPath returns the absolute path to ~/.orarctl.yaml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".orarctl.yaml"), nil
}

// Load reads the configuration at path (DefaultPath when empty).
// A missing file yields the defaults; env variables override both.
func Load(path string) (*Config, error) {
	return load(path, true)
}

// Update applies edit to the settings stored at path (DefaultPath when empty)
// and writes them back. Values that only come from ORAR_* variables are not
// persisted.
func Update(path string, edit func(*Config)) error {
	cfg, err := load(path, false)
	if err != nil {
		return err
	}
	edit(cfg)
	return Save(cfg, path)
}

func load(path string, withEnv bool) (*Config, error) {
	path, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if withEnv {
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}
	for key, value := range settings(Default()) {
		v.SetDefault(key, value)
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// Save writes cfg to path (DefaultPath when empty) as YAML. cfg is written as
// is, so a config from Load carries its env overrides into the file; use
// Update to edit persisted settings.
func Save(cfg *Config, path string) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range settings(cfg) {
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return DefaultPath()
}

// settings flattens cfg into viper keys.
func settings(cfg *Config) map[string]interface{} {
	return map[string]interface{}{
		"source.base_url":           cfg.Source.BaseURL,
		"source.user_agent":         cfg.Source.UserAgent,
		"source.http_timeout":       cfg.Source.HTTPTimeout.String(),
		"cache.size":                cfg.Cache.Size,
		"server.port":               cfg.Server.Port,
		"server.env":                cfg.Server.Env,
		"server.rate_limit_per_min": cfg.Server.RateLimitPerMin,
		"server.rate_limit_burst":   cfg.Server.RateLimitBurst,
		"server.allowed_origins":    cfg.Server.AllowedOrigins,
		"server.trusted_proxies":    cfg.Server.TrustedProxies,
		"log.level":                 cfg.Log.Level,
		"log.format":                cfg.Log.Format,
		"export.semester_start":     cfg.Export.SemesterStart,
		"export.weeks":              cfg.Export.Weeks,
		"export.timezone":           cfg.Export.Timezone,
		"preferences.saved_groups":  cfg.Preferences.SavedGroups,
		"preferences.accent_color":  cfg.Preferences.AccentColor,
	}
}
