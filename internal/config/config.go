// Package config loads habitual settings from defaults, an optional YAML file
// and HABITUAL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "habitual"

	// FileName is the config file looked up in the config directory.
	FileName = "config.yaml"

	// DatabaseFile is the SQLite database filename inside the data directory.
	DatabaseFile = "tasks.db"

	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds runtime settings.
type Config struct {
	// DataDir holds the SQLite database.
	DataDir string `mapstructure:"data_dir"`

	// Backend selects the durable mirror: "sqlite" or "redis".
	Backend string `mapstructure:"backend"`

	RedisURL       string `mapstructure:"redis_url"`
	RedisKeyPrefix string `mapstructure:"redis_key_prefix"`

	// ListenAddr is the HTTP listen address for the web layer.
	ListenAddr string `mapstructure:"listen_addr"`

	LogLevel string `mapstructure:"log_level"`

	// Debug forces debug logging.
	Debug bool `mapstructure:"debug"`

	// Quiet suppresses informational output.
	Quiet bool `mapstructure:"quiet"`
}

// Load reads configuration. If path is empty, config.yaml in DefaultConfigDir
// is used when present; a missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("backend", BackendSQLite)
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("redis_key_prefix", AppName+":")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("debug", false)
	v.SetDefault("quiet", false)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(DefaultConfigDir(), FileName)
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks backend and log level.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendSQLite, BackendRedis)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level is the effective log level.
func (c *Config) Level() log.Level {
	if c.Debug {
		return log.DebugLevel
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// NewLogger returns a logger at the configured level.
func (c *Config) NewLogger() *log.Logger {
	logger := log.New()
	logger.SetLevel(c.Level())
	return logger
}

// DatabasePath returns the SQLite database path.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, DatabaseFile)
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0o755)
}

// DefaultConfigDir uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultDataDir uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}
