// Package config loads bot configuration from the environment, with .env
// support for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/example/taysr/internal/db"
)

// Config is the flat runtime configuration.
type Config struct {
	// DiscordToken authenticates the gateway session.
	DiscordToken string
	// CommandName is the branded picker command and the name used in
	// rendered hint text.
	CommandName string
	// DBPath is the SQLite database location.
	DBPath string
	// GuildID, when set, scopes slash command registration to one guild.
	// Guild-scoped registration propagates instantly, so it is the usual
	// development setting; empty registers globally.
	GuildID string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}

	commandName := os.Getenv("DISCORD_COMMAND_PREFIX")
	if commandName == "" {
		commandName = "taysr"
	}

	dbPath := os.Getenv("TAYSR_DB_PATH")
	if dbPath == "" {
		def, err := db.DefaultPath()
		if err != nil {
			return nil, err
		}
		dbPath = def
	}

	return &Config{
		DiscordToken: token,
		CommandName:  commandName,
		DBPath:       dbPath,
		GuildID:      os.Getenv("DISCORD_GUILD_ID"),
	}, nil
}
