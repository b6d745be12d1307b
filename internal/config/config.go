package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds every setting the client needs, resolved once at startup.
// Values come from defaults, then an optional YAML file, then environment
// variables; the environment always wins.
type Config struct {
	Server string `yaml:"server" env:"SERVER"`
	Scheme string `yaml:"scheme" env:"SCHEME"`
	Topic  string `yaml:"topic" env:"TOPIC"`
	Token  string `yaml:"token" env:"TOKEN"`
	// Timeout is the idle timeout in seconds: the maximum tolerated gap
	// since the last frame of any kind before the session is torn down.
	Timeout int `yaml:"timeout" env:"TIMEOUT"`
}

// Load resolves the configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server:  "ntfy.sh",
		Scheme:  "wss",
		Timeout: 120,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Topic == "" {
		return fmt.Errorf("TOPIC is required: set the topic to subscribe to")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("TIMEOUT must be a positive number of seconds, got %d", c.Timeout)
	}
	return nil
}

// URL returns the WebSocket endpoint for the configured topic.
func (c *Config) URL() string {
	return fmt.Sprintf("%s://%s/%s/ws", c.Scheme, c.Server, c.Topic)
}

// IdleTimeout returns the idle timeout as a duration.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
