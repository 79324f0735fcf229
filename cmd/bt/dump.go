package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zorpastaman/behaviortree"
	"github.com/zorpastaman/behaviortree/internal/cli"
)

var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Print the tree as an indented outline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, nil)
		if err != nil {
			return err
		}
		return runDump(cmd.OutOrStdout(), rt, args[0])
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(w io.Writer, rt *behaviortree.Runtime, path string) error {
	b, err := cli.LoadBuilder(rt, path)
	if err != nil {
		return err
	}
	fmt.Fprint(w, b.Dump())
	return nil
}
