package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// duration accepts "30s" style values in YAML.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = duration(parsed)
	return nil
}

// Config is the optional YAML configuration for the server. Environment
// variables override what the file sets.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	NATS struct {
		URL        string `yaml:"url"`
		StreamName string `yaml:"stream_name"`
	} `yaml:"nats"`
	Outbox struct {
		Mode             string   `yaml:"mode"` // "listener" or "worker"
		FallbackInterval duration `yaml:"fallback_interval"`
		PollInterval     duration `yaml:"poll_interval"`
		BatchSize        int32    `yaml:"batch_size"`
	} `yaml:"outbox"`
}

func defaultConfig() *Config {
	var cfg Config
	cfg.Server.Port = "8080"
	cfg.NATS.URL = "nats://localhost:4222"
	cfg.NATS.StreamName = "MATCH_EVENTS"
	cfg.Outbox.Mode = "listener"
	cfg.Outbox.FallbackInterval = duration(30 * time.Second)
	cfg.Outbox.PollInterval = duration(5 * time.Second)
	cfg.Outbox.BatchSize = 100
	return &cfg
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Env overrides
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.NATS.URL = getEnv("NATS_URL", cfg.NATS.URL)
	cfg.Outbox.Mode = getEnv("OUTBOX_MODE", cfg.Outbox.Mode)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
