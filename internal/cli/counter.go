package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/taysr/internal/config"
	"github.com/example/taysr/internal/db"
	"github.com/example/taysr/internal/wire"
)

// CounterCmd returns the counter command group for identifier maintenance.
func CounterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Inspect and repair per-guild task counters",
	}
	cmd.AddCommand(counterListCmd())
	cmd.AddCommand(counterRepairCmd())
	return cmd
}

func openMaintenance() (*wire.Maintenance, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return wire.BuildMaintenance(database), func() { database.Close() }, nil
}

func counterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all guild counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeDB, err := openMaintenance()
			if err != nil {
				return err
			}
			defer closeDB()

			counters, err := m.CounterRepo.List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list counters: %w", err)
			}
			if len(counters) == 0 {
				fmt.Println("No counters yet.")
				return nil
			}

			fmt.Printf("%-24s %s\n", "GUILD", "SEQUENCE")
			for _, c := range counters {
				fmt.Printf("%-24s %d\n", c.GuildID, c.Sequence)
			}
			return nil
		},
	}
}

func counterRepairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repair <guild-id>",
		Short: "Resynchronize a guild's counter with its stored tasks",
		Long: `Sets the guild's counter to the highest numeric suffix among its
task ids (0 if it has none), so the next reservation continues past
every existing task.

Do not run this while the bot is actively creating tasks for the
same guild; last writer wins.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeDB, err := openMaintenance()
			if err != nil {
				return err
			}
			defer closeDB()

			result, err := m.Counters.Repair(context.Background(), args[0])
			if err != nil {
				return err
			}

			if result.PreviousSequence == result.NewSequence {
				fmt.Printf("%s counter already in sync at %d (%d tasks)\n",
					color.New(color.FgGreen).Sprint("✓"), result.NewSequence, result.TaskCount)
				return nil
			}
			fmt.Printf("%s counter for %s: %d to %d (%d tasks)\n",
				color.New(color.FgYellow).Sprint("repaired"),
				result.GuildID, result.PreviousSequence, result.NewSequence, result.TaskCount)
			return nil
		},
	}
}
