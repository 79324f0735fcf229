package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zorpastaman/behaviortree"
	"github.com/zorpastaman/behaviortree/internal/cli"
	"github.com/zorpastaman/behaviortree/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph FILE",
	Short: "Export the tree visualization",
	Long:  `Builds the tree and outputs a Mermaid diagram (graph TD) of its structure.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, nil)
		if err != nil {
			return err
		}
		return runGraph(cmd.OutOrStdout(), rt, args[0])
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func runGraph(w io.Writer, rt *behaviortree.Runtime, path string) error {
	b, err := cli.LoadBuilder(rt, path)
	if err != nil {
		return err
	}
	root, err := b.Build()
	if err != nil {
		return err
	}
	fmt.Fprint(w, graph.GenerateMermaid(root, nil))
	return nil
}
