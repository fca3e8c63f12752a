package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "STOREFRONT"
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
)

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	// DSN selects the PostgreSQL catalog store. Empty DSN runs
	// against the seeded in-memory store.
	DSN string `mapstructure:"dsn"`
	// SnapshotDir holds per-session cart snapshot files.
	SnapshotDir string `mapstructure:"snapshot_dir"`
}

type AuthConfig struct {
	// AdminRole is the profile role required by the admin surface.
	AdminRole string `mapstructure:"admin_role"`
	// AdminTokens grants the admin role to fixed tokens in dev mode
	// (in-memory store). Ignored when a DSN is configured; the
	// profiles table is the enforcement boundary then.
	AdminTokens []string `mapstructure:"admin_tokens"`
}

// Config holds all application configuration, loaded from an optional
// config file with environment variable overrides.
type Config struct {
	LogLevel string        `mapstructure:"log_level"`
	Server   ServerConfig  `mapstructure:"server"`
	Storage  StorageConfig `mapstructure:"storage"`
	Auth     AuthConfig    `mapstructure:"auth"`
}

// Load reads configuration and validates it.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.shutdown_timeout", 30)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.snapshot_dir", "data/carts")
	v.SetDefault("auth.admin_role", "admin")
	v.SetDefault("auth.admin_tokens", []string{})

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := configFilepath(); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func configFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file path")
	_ = cmdLine.Parse(os.Args[1:])

	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env
	}
	return *arg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}

	if c.Storage.SnapshotDir == "" {
		return fmt.Errorf("storage.snapshot_dir is required")
	}

	if c.Storage.DSN == "" && len(c.Auth.AdminTokens) == 0 {
		return fmt.Errorf("auth.admin_tokens must be set when no storage.dsn is configured")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}
