package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_RequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DISCORD_TOKEN is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-1")
	t.Setenv("DISCORD_COMMAND_PREFIX", "")
	t.Setenv("TAYSR_DB_PATH", "")
	t.Setenv("DISCORD_GUILD_ID", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CommandName != "taysr" {
		t.Errorf("CommandName = %q, want taysr", cfg.CommandName)
	}
	if filepath.Base(cfg.DBPath) != "taysr.db" {
		t.Errorf("DBPath = %q, want default taysr.db", cfg.DBPath)
	}
	if cfg.GuildID != "" {
		t.Errorf("GuildID = %q, want empty", cfg.GuildID)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-1")
	t.Setenv("DISCORD_COMMAND_PREFIX", "derbybot")
	t.Setenv("TAYSR_DB_PATH", "/tmp/custom.db")
	t.Setenv("DISCORD_GUILD_ID", "guild-1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CommandName != "derbybot" {
		t.Errorf("CommandName = %q", cfg.CommandName)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.GuildID != "guild-1" {
		t.Errorf("GuildID = %q", cfg.GuildID)
	}
}
