package kook

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/Tian-que/kook-go-sdk/api"
)

// BotConfig holds the credentials of one bot.
type BotConfig struct {
	Token string `yaml:"token" env:"TOKEN"`
}

// Config holds adapter-wide settings. Values come from an optional YAML
// file, then environment variables with the KOOK_ prefix override them
// (KOOK_COMPRESS, KOOK_IGNORE_OTHER_BOTS, ...).
type Config struct {
	Bots            []BotConfig   `yaml:"bots"`
	Compress        bool          `yaml:"compress" env:"COMPRESS"`
	IgnoreOtherBots bool          `yaml:"ignore_other_bots" env:"IGNORE_OTHER_BOTS"`
	APIBaseURL      string        `yaml:"api_base_url" env:"API_BASE_URL"`
	APITimeout      time.Duration `yaml:"api_timeout" env:"API_TIMEOUT"`
	Nicknames       []string      `yaml:"nicknames" env:"NICKNAMES"`
	SuppressEvents  []string      `yaml:"suppressed_events" env:"SUPPRESSED_EVENTS"`

	// Token is a single-bot convenience, merged into Bots by Validate.
	Token string `yaml:"token" env:"TOKEN"`
}

// DefaultConfig returns a config with production defaults and no bots.
func DefaultConfig() Config {
	return Config{
		APIBaseURL: api.DefaultBaseURL,
		APITimeout: 30 * time.Second,
	}
}

// LoadConfig reads a YAML config file (path may be empty) and applies
// KOOK_-prefixed environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "KOOK_"}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalizes the config and rejects one without any bot token.
func (c *Config) Validate() error {
	if c.Token != "" {
		c.Bots = append(c.Bots, BotConfig{Token: c.Token})
		c.Token = ""
	}
	if len(c.Bots) == 0 {
		return fmt.Errorf("no bot tokens configured")
	}
	for i, b := range c.Bots {
		if b.Token == "" {
			return fmt.Errorf("bots[%d]: empty token", i)
		}
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = api.DefaultBaseURL
	}
	if c.APITimeout <= 0 {
		c.APITimeout = 30 * time.Second
	}
	return nil
}
