package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/matchday/internal/domain"
	"github.com/spf13/viper"
)

const envPrefix = "MATCHDAY"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds marketplace backend configuration
type ServerConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// FetchConfig controls how fixture collections are paged in
type FetchConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// CacheConfig holds the on-disk directory cache settings.
// An empty Dir keeps the directory in memory only.
type CacheConfig struct {
	Dir             string        `mapstructure:"dir"`
	DirectoryMaxAge time.Duration `mapstructure:"directory_max_age"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultKind string `mapstructure:"default_kind"` // "league" or "team"
	RecentLimit int    `mapstructure:"recent_limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Timeout: 30 * time.Second,
		},
		Fetch: FetchConfig{
			PageSize: 100,
		},
		Cache: CacheConfig{
			Dir:             defaultCachePath(),
			DirectoryMaxAge: 24 * time.Hour,
		},
		UI: UIConfig{
			DefaultKind: string(domain.ParentLeague),
			RecentLimit: 10,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "matchday", "matchday.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "matchday", "matchday.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "matchday")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "matchday")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "matchday", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "matchday", "cache")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return load(defaultConfigPath(), ".")
}

func load(dirs ...string) (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

// newViper returns a viper instance with every key defaulted so that
// environment overrides (MATCHDAY_SERVER_URL, ...) apply on Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setAll(v, DefaultConfig(), v.SetDefault)
	return v
}

// setAll writes every field of cfg through set with its snake_case key
func setAll(v *viper.Viper, cfg *Config, set func(string, any)) {
	set("server.url", cfg.Server.URL)
	set("server.api_key", cfg.Server.APIKey)
	set("server.timeout", cfg.Server.Timeout.String())

	set("fetch.page_size", cfg.Fetch.PageSize)

	set("cache.dir", cfg.Cache.Dir)
	set("cache.directory_max_age", cfg.Cache.DirectoryMaxAge.String())

	set("ui.default_kind", cfg.UI.DefaultKind)
	set("ui.recent_limit", cfg.UI.RecentLimit)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
}

// SaveConfig saves the configuration to the default config file
func SaveConfig(cfg *Config) error {
	return save(cfg, defaultConfigPath())
}

func save(cfg *Config, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setAll(v, cfg, v.Set)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if the server URL and API key are set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != "" && c.Server.APIKey != ""
}

// DefaultKind returns the configured parent kind, falling back to leagues
func (c *Config) DefaultKind() domain.ParentKind {
	kind := domain.ParentKind(strings.ToLower(c.UI.DefaultKind))
	if !kind.Valid() {
		return domain.ParentLeague
	}
	return kind
}

// ClearCache removes the on-disk directory cache
func (c *Config) ClearCache() error {
	if c.Cache.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(c.Cache.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
