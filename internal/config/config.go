// Package config provides environment-based configuration for the bridge.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the bridge needs at startup. All Slack and
// database settings are required; the process refuses to start without them.
type Config struct {
	SlackClientID     string `envconfig:"SLACK_CLIENT_ID"`
	SlackClientSecret string `envconfig:"SLACK_CLIENT_SECRET"`
	SlackAppID        string `envconfig:"SLACK_APP_ID"`
	SlackSigningKey   string `envconfig:"SLACK_SIGNING_SECRET"`

	DBUsername string `envconfig:"DB_USERNAME"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBHost     string `envconfig:"DB_HOST"`
	DBPort     int    `envconfig:"DB_PORT"`
	DBName     string `envconfig:"DB_NAME"`

	Port int `envconfig:"PORT" default:"8080"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN builds the MySQL DSN for the credential database.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		c.DBUsername, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// validate checks that all required settings are present.
func (c *Config) validate() error {
	var missing []string
	checks := []struct {
		name   string
		absent bool
	}{
		{"SLACK_CLIENT_ID", c.SlackClientID == ""},
		{"SLACK_CLIENT_SECRET", c.SlackClientSecret == ""},
		{"SLACK_APP_ID", c.SlackAppID == ""},
		{"SLACK_SIGNING_SECRET", c.SlackSigningKey == ""},
		{"DB_USERNAME", c.DBUsername == ""},
		{"DB_PASSWORD", c.DBPassword == ""},
		{"DB_HOST", c.DBHost == ""},
		{"DB_PORT", c.DBPort == 0},
		{"DB_NAME", c.DBName == ""},
	}
	for _, ck := range checks {
		if ck.absent {
			missing = append(missing, ck.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
