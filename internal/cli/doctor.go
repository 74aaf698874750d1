package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/taysr/internal/config"
	"github.com/example/taysr/internal/core/taskid"
	"github.com/example/taysr/internal/db"
	"github.com/example/taysr/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate Taysr configuration and database health",
		Long: `Health check for a Taysr deployment.

Validates:
- Environment configuration (token, command name)
- Database file and schema
- Counter drift (counters behind the task ids they issued)
- Guild configurations

Examples:
  taysr doctor          # Run full health check
  taysr doctor --quiet  # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{}

			cfg, cfgResult := checkConfig()
			results = append(results, cfgResult)

			if cfg != nil {
				results = append(results, checkDatabase(cfg)...)
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, colorStatus(r.Status))
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

func colorStatus(status string) string {
	switch status {
	case "✓":
		return color.New(color.FgGreen).Sprint(status)
	case "⚠":
		return color.New(color.FgYellow).Sprint(status)
	default:
		return color.New(color.FgRed).Sprint(status)
	}
}

// checkConfig validates the environment configuration.
func checkConfig() (*config.Config, CheckResult) {
	cfg, err := config.Load()
	if err != nil {
		return nil, CheckResult{
			Name:    "Config",
			Status:  "✗",
			Details: "  " + err.Error(),
		}
	}
	return cfg, CheckResult{Name: "Config", Status: "✓"}
}

// checkDatabase validates the database file, schema, counters and guild
// configurations.
func checkDatabase(cfg *config.Config) []CheckResult {
	if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
		return []CheckResult{{
			Name:    "Database",
			Status:  "⚠",
			Details: fmt.Sprintf("  %s does not exist yet (created on first run)", cfg.DBPath),
		}}
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return []CheckResult{{
			Name:    "Database",
			Status:  "✗",
			Details: "  " + err.Error(),
		}}
	}
	defer database.Close()

	results := []CheckResult{{Name: "Database", Status: "✓"}}
	m := wire.BuildMaintenance(database)

	results = append(results, checkCounterDrift(m))
	results = append(results, checkGuildConfigs(m))
	return results
}

// checkCounterDrift flags guilds whose counter is behind the highest task id
// it should have issued. Such guilds will hit duplicate-id failures on the
// next creation.
func checkCounterDrift(m *wire.Maintenance) CheckResult {
	ctx := context.Background()

	counters, err := m.CounterRepo.List(ctx)
	if err != nil {
		return CheckResult{Name: "Counters", Status: "✗", Details: "  " + err.Error()}
	}

	seen := make(map[string]int)
	for _, c := range counters {
		seen[c.GuildID] = c.Sequence
	}

	// Guilds with tasks but no counter row drift too.
	configs, err := m.ConfigRepo.List(ctx)
	if err != nil {
		return CheckResult{Name: "Counters", Status: "✗", Details: "  " + err.Error()}
	}
	guilds := make(map[string]bool)
	for g := range seen {
		guilds[g] = true
	}
	for _, c := range configs {
		guilds[c.GuildID] = true
	}

	var drifted []string
	for guildID := range guilds {
		tasks, err := m.TaskRepo.FindByGuild(ctx, guildID)
		if err != nil {
			return CheckResult{Name: "Counters", Status: "✗", Details: "  " + err.Error()}
		}
		ids := make([]string, len(tasks))
		for i, t := range tasks {
			ids[i] = t.TaskID
		}
		if max := taskid.MaxSuffix(ids); max > seen[guildID] {
			drifted = append(drifted, fmt.Sprintf("%s (counter %d, max task %d)", guildID, seen[guildID], max))
		}
	}

	if len(drifted) > 0 {
		return CheckResult{
			Name:   "Counters",
			Status: "✗",
			Details: "  Drifted: " + strings.Join(drifted, ", ") +
				"\n  Run: taysr counter repair <guild-id>",
		}
	}
	return CheckResult{Name: "Counters", Status: "✓"}
}

// checkGuildConfigs reports guilds without a task list channel.
func checkGuildConfigs(m *wire.Maintenance) CheckResult {
	configs, err := m.ConfigRepo.List(context.Background())
	if err != nil {
		return CheckResult{Name: "Guild Configs", Status: "✗", Details: "  " + err.Error()}
	}

	var unset []string
	for _, c := range configs {
		if c.TaskListChannelID == "" {
			unset = append(unset, c.GuildID)
		}
	}
	if len(unset) > 0 {
		return CheckResult{
			Name:    "Guild Configs",
			Status:  "⚠",
			Details: "  No task list channel: " + strings.Join(unset, ", "),
		}
	}
	return CheckResult{Name: "Guild Configs", Status: "✓"}
}
