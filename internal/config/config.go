// Package config loads server configuration from defaults, an optional
// config file and the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override except PORT.
const EnvPrefix = "SIMPLE_MCP"

// Config is the top-level configuration.
type Config struct {
	Port              int           `json:"port" mapstructure:"port"`
	Log               LogConfig     `json:"log" mapstructure:"log"`
	ValidateArguments bool          `json:"validate_arguments" mapstructure:"validate_arguments"`
	RequestTimeout    time.Duration `json:"request_timeout" mapstructure:"request_timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Pretty bool   `json:"pretty" mapstructure:"pretty"`
	File   string `json:"file" mapstructure:"file"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Port: 8000,
		Log: LogConfig{
			Level: "info",
		},
		RequestTimeout: 60 * time.Second,
	}
}

// Load reads configuration. path may be empty; a path that does not exist
// yields defaults plus environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("port", def.Port)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.pretty", def.Log.Pretty)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("validate_arguments", def.ValidateArguments)
	v.SetDefault("request_timeout", def.RequestTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", EnvPrefix+"_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind PORT: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// Addr returns the listen address for the HTTP transports.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
