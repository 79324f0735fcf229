package cli

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/zorpastaman/behaviortree"
	"github.com/zorpastaman/behaviortree/pkg/builder"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/observability"
)

// RuntimeOptions contains the configuration shared by the tree commands.
type RuntimeOptions struct {
	// Logger receives build diagnostics and node events. Node events are
	// logged at debug level, runtime errors at warn.
	Logger *slog.Logger
	// Metrics, when set, receives the Prometheus collectors.
	Metrics prometheus.Registerer
}

// CreateRuntime initializes a Runtime with standard CLI conventions.
func CreateRuntime(opts RuntimeOptions) (*behaviortree.Runtime, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	hooks := []domain.LifecycleHooks{observability.LogHooks(logger)}
	if opts.Metrics != nil {
		m, err := observability.NewMetrics(opts.Metrics)
		if err != nil {
			return nil, fmt.Errorf("error registering metrics: %w", err)
		}
		hooks = append(hooks, m.Hooks())
	}
	return behaviortree.New(
		behaviortree.WithLogger(logger),
		behaviortree.WithHooks(observability.Combine(hooks...)),
	), nil
}

// LoadBuilder loads the descriptor file at path and replays it.
func LoadBuilder(rt *behaviortree.Runtime, path string) (*builder.TreeBuilder, error) {
	b, err := rt.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	return b, nil
}
