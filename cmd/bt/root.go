package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/zorpastaman/behaviortree"
	"github.com/zorpastaman/behaviortree/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "bt",
	Short: "bt builds, inspects and runs behavior trees",
	Long: `bt loads behavior tree descriptors (YAML or JSON), validates them against
the built-in node registry and ticks them from the command line or behind an
HTTP server.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every node event (same as --log-level debug)")
}

// newLogger reads the persistent logging flags.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.CreateLogger(level, debug)
}

// newRuntime builds the Runtime used by every tree command.
func newRuntime(cmd *cobra.Command, metrics prometheus.Registerer) (*behaviortree.Runtime, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}
	return cli.CreateRuntime(cli.RuntimeOptions{Logger: logger, Metrics: metrics})
}
