package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type ClientConfig struct {
	BaseURL    string `yaml:"baseURL"`
	APIKeyFile string `yaml:"apiKeyFile"`
}

type PollConfig struct {
	IntervalMs  int `yaml:"intervalMs"`
	MaxAttempts int `yaml:"maxAttempts"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Client ClientConfig `yaml:"client"`
	Poll   PollConfig   `yaml:"poll"`
	Log    LogConfig    `yaml:"log"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Poll: PollConfig{
			IntervalMs:  3000,
			MaxAttempts: 60,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML config file, filling unset fields from Default.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
