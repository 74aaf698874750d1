// Package cli implements the taysr command-line surface: running the bot
// and offline maintenance against its database.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/example/taysr/internal/adapters/discord"
	"github.com/example/taysr/internal/commands"
	"github.com/example/taysr/internal/config"
	"github.com/example/taysr/internal/db"
	"github.com/example/taysr/internal/wire"
)

// ServeCmd returns the serve command that runs the bot.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Taysr bot",
		Long: `Connects to Discord, registers slash commands and serves
interactions until interrupted.

Configuration comes from the environment (or a .env file):
  DISCORD_TOKEN           bot token (required)
  DISCORD_COMMAND_PREFIX  branded command name (default: taysr)
  TAYSR_DB_PATH           database path (default: ~/.taysr/taysr.db)
  DISCORD_GUILD_ID        guild-scoped registration for development`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer database.Close()

			session, err := discordgo.New("Bot " + cfg.DiscordToken)
			if err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}
			session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

			application := wire.Build(database, discord.NewChannelAdapter(session), cfg.CommandName)

			registry, err := commands.DefaultRegistry(commands.Services{
				Flow:     application.Flow,
				Configs:  application.Configs,
				TaskList: application.TaskList,
			})
			if err != nil {
				return err
			}

			if err := session.Open(); err != nil {
				return fmt.Errorf("failed to connect to Discord: %w", err)
			}
			defer session.Close()

			gateway := discord.NewGateway(session, registry, application.Flow, cfg.CommandName, cfg.GuildID)
			if err := gateway.Start(); err != nil {
				return err
			}

			fmt.Printf("Taysr is running as %s. Press Ctrl+C to stop.\n", session.State.User.Username)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			fmt.Println("Shutting down.")
			return nil
		},
	}
}
