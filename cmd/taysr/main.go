package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/taysr/internal/cli"
	"github.com/example/taysr/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "taysr",
		Short:   "Taysr - a task tracker bot for Discord servers",
		Version: version.String(),
		Long: `Taysr keeps a pinned, always-current list of your server's open
tasks and walks members through creating new ones.`,
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.CounterCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
