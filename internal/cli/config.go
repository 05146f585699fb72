package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/evcraddock/sos-artisans/internal/config"
)

const defaultServerURL = config.DefaultBaseURL

// CLIConfig holds CLI configuration read from disk.
type CLIConfig struct {
	ServerURL string `yaml:"server_url,omitempty"`
	Timeout   string `yaml:"timeout,omitempty"`
}

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "sos", "config.yaml"), nil
}

// loadConfig reads the CLI config from disk.
// Returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// getServerURL returns the API base URL from the flag, env var, config, or default.
func getServerURL(file CLIConfig) string {
	if flagServer != "" {
		return flagServer
	}
	if v := os.Getenv("SOS_SERVER_URL"); v != "" {
		return v
	}
	if file.ServerURL != "" {
		return file.ServerURL
	}
	return defaultServerURL
}

// getTimeout returns the request timeout from env var, config, or default.
func getTimeout(file CLIConfig) (time.Duration, error) {
	raw := os.Getenv("SOS_TIMEOUT")
	if raw == "" {
		raw = file.Timeout
	}
	if raw == "" {
		return config.DefaultTimeout, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing timeout %q: %w", raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", d)
	}
	return d, nil
}

// clientConfig builds the API client configuration.
func clientConfig() (config.Config, error) {
	file, err := loadConfig()
	if err != nil {
		return config.Config{}, err
	}

	timeout, err := getTimeout(file)
	if err != nil {
		return config.Config{}, err
	}

	return config.Default().
		WithBaseURL(getServerURL(file)).
		WithTimeout(timeout), nil
}
