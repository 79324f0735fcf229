package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/zorpastaman/behaviortree"
	"github.com/zorpastaman/behaviortree/internal/cli"
	"github.com/zorpastaman/behaviortree/internal/presentation/tui"
	"github.com/zorpastaman/behaviortree/pkg/adapters/memory"
	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// runOptions contains the configuration for the run command.
type runOptions struct {
	Path     string
	Frames   uint64
	Interval time.Duration
	Set      []string
	Loop     bool
	Quiet    bool
}

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Tick a tree from the command line",
	Long: `Builds the tree, seeds the blackboard from --set and ticks it until the root
finishes, printing the status of every node after each frame.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions{Path: args[0]}
		opts.Frames, _ = cmd.Flags().GetUint64("frames")
		opts.Interval, _ = cmd.Flags().GetDuration("interval")
		opts.Set, _ = cmd.Flags().GetStringArray("set")
		opts.Loop, _ = cmd.Flags().GetBool("loop")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")

		rt, err := newRuntime(cmd, nil)
		if err != nil {
			return err
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		status, err := runTree(sigCtx, cmd.OutOrStdout(), rt, opts)
		if err != nil {
			if errors.Is(err, context.Canceled) && sigCtx.Signal() != nil {
				cli.PrintSystemMessage(cmd.OutOrStdout(), "Interrupted.")
				return nil
			}
			return err
		}
		if status == domain.StatusError {
			return fmt.Errorf("tree finished with status %s", status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Uint64("frames", 0, "Stop after this many frames (0 = until the root finishes)")
	runCmd.Flags().Duration("interval", 0, "Delay between frames")
	runCmd.Flags().StringArray("set", nil, "Seed a blackboard value (key=value, repeatable)")
	runCmd.Flags().Bool("loop", false, "Keep ticking after the root finishes")
	runCmd.Flags().BoolP("quiet", "q", false, "Only print the final status")
}

func runTree(ctx context.Context, w io.Writer, rt *behaviortree.Runtime, opts runOptions) (domain.Status, error) {
	values, err := cli.ParseAssignments(opts.Set)
	if err != nil {
		return domain.StatusInvalid, err
	}

	b, err := cli.LoadBuilder(rt, opts.Path)
	if err != nil {
		return domain.StatusInvalid, err
	}
	tree, err := rt.NewTree(b, memory.NewBlackboardFrom(values))
	if err != nil {
		return domain.StatusInvalid, err
	}

	palette := tui.NewPalette(w)
	loopOpts := cli.LoopOptions{
		Interval:  opts.Interval,
		MaxFrames: opts.Frames,
		Repeat:    opts.Loop,
		Logger:    rt.Logger(),
	}
	if !opts.Quiet {
		loopOpts.OnFrame = func(f cli.Frame) {
			fmt.Fprint(w, palette.RenderFrame(f.Number, f.Status, f.Nodes))
		}
	}

	status, err := cli.NewLoop(tree, loopOpts).Run(ctx)
	if err != nil {
		return status, err
	}
	cli.PrintSystemMessage(w, "Finished at frame %d: %s", tree.Frame(), palette.Status(status))
	return status, nil
}
