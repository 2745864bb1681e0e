// Package config loads the settings shared by the trieit binaries.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"gitlab.com/pnathan/trieit/src/lib/index"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Bench  BenchConfig  `mapstructure:"bench"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	Index         string        `mapstructure:"index"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
	MaxPool       int           `mapstructure:"max_pool"`
	Peers         []string      `mapstructure:"peers"`
}

type BenchConfig struct {
	Index  string `mapstructure:"index"`
	Latin1 bool   `mapstructure:"latin1"`
}

type LogConfig struct {
	Development bool `mapstructure:"development"`
}

// Load reads path when it is not empty, then applies TRIEIT_* environment
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("trieit")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 1337)
	v.SetDefault("server.index", index.Compressed.String())
	v.SetDefault("server.flush_interval", "30s")
	v.SetDefault("server.max_pool", 1000)
	v.SetDefault("server.peers", []string{})

	v.SetDefault("bench.index", index.Compressed.String())
	v.SetDefault("bench.latin1", false)

	v.SetDefault("log.development", false)
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if _, err := index.ParseKind(c.Server.Index); err != nil {
		return fmt.Errorf("server index: %w", err)
	}
	if _, err := index.ParseKind(c.Bench.Index); err != nil {
		return fmt.Errorf("bench index: %w", err)
	}
	if c.Server.MaxPool <= 0 {
		return fmt.Errorf("max_pool must be positive, got %d", c.Server.MaxPool)
	}
	if c.Server.FlushInterval <= 0 {
		return fmt.Errorf("flush_interval must be positive, got %v", c.Server.FlushInterval)
	}
	return nil
}

// Addr is the listen address of the server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
