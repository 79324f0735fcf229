package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/zorpastaman/behaviortree/internal/cli"
	httpAdapter "github.com/zorpastaman/behaviortree/pkg/adapters/http"
	"github.com/zorpastaman/behaviortree/pkg/adapters/memory"
)

var serveCmd = &cobra.Command{
	Use:   "serve FILE",
	Short: "Tick a tree behind an HTTP server",
	Long: `Ticks the tree on a fixed interval, restarting it whenever the root finishes,
and exposes its state on /tree, live frames on /events, the node registry
on /types and Prometheus metrics on /metrics.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		interval, _ := cmd.Flags().GetDuration("interval")
		set, _ := cmd.Flags().GetStringArray("set")

		values, err := cli.ParseAssignments(set)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		rt, err := newRuntime(cmd, reg)
		if err != nil {
			return err
		}
		b, err := cli.LoadBuilder(rt, args[0])
		if err != nil {
			return err
		}
		tree, err := rt.NewTree(b, memory.NewBlackboardFrom(values))
		if err != nil {
			return err
		}

		streams := httpAdapter.NewStreamManager(rt.Logger())
		loop := cli.NewLoop(tree, cli.LoopOptions{
			Interval: interval,
			Repeat:   true,
			Streams:  streams,
			Logger:   rt.Logger(),
		})

		handler := httpAdapter.NewHandler(loop,
			httpAdapter.WithLogger(rt.Logger()),
			httpAdapter.WithRegistry(rt.Registry()),
			httpAdapter.WithGatherer(reg),
			httpAdapter.WithStreams(streams),
		)

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		// Request contexts derive from sigCtx so SSE streams end on shutdown.
		srv := &http.Server{
			Addr:        ":" + port,
			Handler:     handler,
			BaseContext: func(net.Listener) context.Context { return sigCtx },
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			cli.PrintSystemMessage(cmd.OutOrStdout(), "Serving %s on %s", args[0], srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		loopDone := make(chan error, 1)
		go func() {
			_, err := loop.Run(sigCtx)
			loopDone <- err
		}()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			sigCtx.Cancel()
			<-loopDone
			return fmt.Errorf("server error: %w", err)
		case <-sigCtx.Done():
		}

		<-loopDone
		cli.PrintSystemMessage(cmd.OutOrStdout(), "Start shutdown... Signal: %v", sigCtx.Signal())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Asking listener to shut down and shed load.
		if err := srv.Shutdown(ctx); err != nil {
			rt.Logger().Warn("graceful shutdown did not complete", "error", err)
			if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		cli.PrintSystemMessage(cmd.OutOrStdout(), "Server stopped gracefully.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Duration("interval", 100*time.Millisecond, "Delay between frames")
	serveCmd.Flags().StringArray("set", nil, "Seed a blackboard value (key=value, repeatable)")
}
