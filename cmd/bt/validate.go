package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zorpastaman/behaviortree"
	"github.com/zorpastaman/behaviortree/internal/cli"
	"github.com/zorpastaman/behaviortree/internal/presentation/tui"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a tree descriptor for consistency",
	Long:  `Loads the descriptor, builds the tree and reports errors and warnings such as single-child composites or unreachable records.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, nil)
		if err != nil {
			return err
		}
		return runValidate(cmd.OutOrStdout(), rt, args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(w io.Writer, rt *behaviortree.Runtime, path string) error {
	b, err := cli.LoadBuilder(rt, path)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if _, err := b.Build(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	palette := tui.NewPalette(w)
	for _, warn := range b.Warnings() {
		fmt.Fprintln(w, palette.Warn("warning: "+warn.String()))
	}
	cli.PrintSystemMessage(w, "%s is valid (%d nodes).", path, b.Len())
	return nil
}
