package client

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config describes how the CLI reaches the BookBites server.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Session SessionConfig `toml:"session"`
}

// ServerConfig contains connection settings.
type ServerConfig struct {
	Address string        `toml:"address"`
	TLS     bool          `toml:"tls"`
	CAFile  string        `toml:"ca_file"`
	Timeout time.Duration `toml:"timeout"`
	// RateLimit is the number of calls per second, zero disables limiting.
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// SessionConfig points at the persisted session.
type SessionConfig struct {
	Path string `toml:"path"`
}

// DefaultConfig returns settings for a local development server.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:   "localhost:50051",
			Timeout:   10 * time.Second,
			RateLimit: 5,
			Burst:     2,
		},
		Session: SessionConfig{
			Path: "bookbites-session.toml",
		},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if config.Server.Address == "" {
		return nil, fmt.Errorf("server address is required")
	}

	return config, nil
}
