// Package config loads the adapter's runtime configuration from
// config.yaml.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root of config.yaml.
type Config struct {
	CoinbasePro CoinbaseProConfig `yaml:"coinbasepro"`
}

// CoinbaseProConfig holds the sandbox/live credential pairs and the
// active profile flag. Switching environments is a config edit, not a
// rebuild.
type CoinbaseProConfig struct {
	Sandbox bool          `yaml:"sandbox"`
	Live    ProfileConfig `yaml:"live"`
	SandboxConfig ProfileConfig `yaml:"sandboxConfig"`
}

// ProfileConfig is one set of exchange credentials.
type ProfileConfig struct {
	APIKey     string `yaml:"apiKey"`
	Passphrase string `yaml:"passPhrase"`
	SecretKey  string `yaml:"secretKey"`
}

// Active returns whichever of Live/SandboxConfig is selected by Sandbox.
func (c CoinbaseProConfig) Active() ProfileConfig {
	if c.Sandbox {
		return c.SandboxConfig
	}
	return c.Live
}

// Load reads and parses path into a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}
