package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Discord configuration
	DiscordToken string `envconfig:"DISCORD_TOKEN"`
	GuildID      string `envconfig:"GUILD_ID"`

	// Patrol notification configuration
	ChannelID      string `envconfig:"CHANNEL_ID"`
	RoleID         string `envconfig:"ROLE_ID"`
	PatrolHour     int    `envconfig:"PATROL_HOUR" default:"12"`
	PatrolTimezone string `envconfig:"PATROL_TIMEZONE" default:"America/New_York"`

	// Economy storage
	DataDir string `envconfig:"DATA_DIR" default:"./data"`

	// Environment: "development", "production" or "test"
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Environment != "test" {
		// Validate required configuration
		if cfg.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if cfg.ChannelID == "" {
			return nil, fmt.Errorf("CHANNEL_ID is required")
		}
		if cfg.RoleID == "" {
			return nil, fmt.Errorf("ROLE_ID is required")
		}
	}

	if cfg.PatrolHour < 0 || cfg.PatrolHour > 23 {
		return nil, fmt.Errorf("PATROL_HOUR must be between 0 and 23, got %d", cfg.PatrolHour)
	}

	return &cfg, nil
}
