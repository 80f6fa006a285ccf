package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string `env:"ROSTER_SERVER" envDefault:"http://localhost:8080"`
	Output    string `env:"ROSTER_OUTPUT" envDefault:"text"`
}

// DefaultConfig returns a Config populated from the environment
func DefaultConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks flag and environment values
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server URL is required")
	}
	switch c.Output {
	case OutputText, OutputJSON:
		return nil
	}
	return fmt.Errorf("invalid output format %q: must be text or json", c.Output)
}
