package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zorpastaman/behaviortree"
	"github.com/zorpastaman/behaviortree/internal/presentation/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bt",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		tui.NewPalette(w).PrintBanner(w)
		fmt.Fprintf(w, "bt version %s\n", strings.TrimSpace(behaviortree.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
