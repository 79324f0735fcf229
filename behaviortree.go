package behaviortree

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zorpastaman/behaviortree/pkg/adapters/file"
	"github.com/zorpastaman/behaviortree/pkg/adapters/memory"
	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/builder"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/nodes"
	"github.com/zorpastaman/behaviortree/pkg/ports"
	"github.com/zorpastaman/behaviortree/pkg/registry"
)

// Runtime is the high-level entry point for the library.
// It carries the registry and the ambient options shared by every tree it
// builds, and hands out builders and ready-to-tick trees.
type Runtime struct {
	registry *registry.Registry
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	clock    func() time.Time
}

// Option defines a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithLogger sets a custom structured logger for builders and trees.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithHooks registers observability hooks on every tree.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runtime) {
		r.hooks = hooks
	}
}

// WithRegistry replaces the default registry of built-in nodes.
func WithRegistry(reg *registry.Registry) Option {
	return func(r *Runtime) {
		r.registry = reg
	}
}

// WithClock overrides the time source of every tree.
func WithClock(clock func() time.Time) Option {
	return func(r *Runtime) {
		r.clock = clock
	}
}

// New initializes a Runtime. Without WithRegistry it knows the built-in
// node types of package nodes.
func New(opts ...Option) *Runtime {
	r := &Runtime{}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = nodes.NewRegistry()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// Registry returns the node-type registry.
func (r *Runtime) Registry() *registry.Registry { return r.registry }

// Logger returns the configured logger.
func (r *Runtime) Logger() *slog.Logger { return r.logger }

// NewBuilder returns an empty TreeBuilder bound to the registry.
func (r *Runtime) NewBuilder() *builder.TreeBuilder {
	return builder.New(r.registry, builder.WithLogger(r.logger))
}

// FromDescriptor replays desc into a new TreeBuilder.
func (r *Runtime) FromDescriptor(desc *domain.TreeDescriptor) (*builder.TreeBuilder, error) {
	return builder.FromDescriptor(r.registry, desc, builder.WithLogger(r.logger))
}

// LoadFile reads a YAML or JSON descriptor file into a new TreeBuilder.
func (r *Runtime) LoadFile(path string) (*builder.TreeBuilder, error) {
	desc, err := file.LoadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := r.FromDescriptor(desc)
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", desc.Name, err)
	}
	return b, nil
}

// Load fetches the descriptor stored under name and replays it.
func (r *Runtime) Load(ctx context.Context, store ports.DescriptorStore, name string) (*builder.TreeBuilder, error) {
	desc, err := store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return r.FromDescriptor(desc)
}

// NewTree builds b and pairs the result with bb, applying the Runtime's
// logger, hooks and clock. A nil bb gets a fresh in-memory blackboard.
func (r *Runtime) NewTree(b *builder.TreeBuilder, bb ports.Blackboard, opts ...behavior.RootOption) (*behavior.TreeRoot, error) {
	if bb == nil {
		bb = memory.NewBlackboard()
	}
	return b.BuildRoot(bb, append(r.rootOptions(), opts...)...)
}

func (r *Runtime) rootOptions() []behavior.RootOption {
	opts := []behavior.RootOption{
		behavior.WithLogger(r.logger),
		behavior.WithHooks(r.hooks),
	}
	if r.clock != nil {
		opts = append(opts, behavior.WithClock(r.clock))
	}
	return opts
}
