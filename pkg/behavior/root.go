package behavior

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/ports"
)

// TreeRoot pairs a materialized root Behavior with the shared Blackboard.
// It is the handle the host ticks once per frame.
// Trees are never mutated once built: build a new TreeRoot to replace one.
// A TreeRoot is not safe for concurrent use.
type TreeRoot struct {
	id         string
	root       *Behavior
	blackboard ports.Blackboard
	clock      func() time.Time
	logger     *slog.Logger
	hooks      domain.LifecycleHooks

	frame uint64
	tc    TickContext
}

// RootOption configures a TreeRoot.
type RootOption func(*TreeRoot)

// WithLogger sets the logger passed to nodes and used for runtime diagnostics.
func WithLogger(logger *slog.Logger) RootOption {
	return func(t *TreeRoot) {
		t.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) RootOption {
	return func(t *TreeRoot) {
		t.hooks = hooks
	}
}

// WithClock overrides the time source stamped on every tick.
func WithClock(clock func() time.Time) RootOption {
	return func(t *TreeRoot) {
		t.clock = clock
	}
}

// WithID overrides the generated instance ID.
func WithID(id string) RootOption {
	return func(t *TreeRoot) {
		t.id = id
	}
}

// NewTreeRoot pairs root with blackboard.
func NewTreeRoot(root *Behavior, blackboard ports.Blackboard, opts ...RootOption) (*TreeRoot, error) {
	if root == nil {
		return nil, errors.New("tree root: root behavior is nil")
	}
	if blackboard == nil {
		return nil, errors.New("tree root: blackboard is nil")
	}

	t := &TreeRoot{
		id:         uuid.NewString(),
		root:       root,
		blackboard: blackboard,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.New(slog.DiscardHandler)
	}
	t.logger = t.logger.With("tree", t.id)

	t.tc = TickContext{
		Blackboard: t.blackboard,
		Logger:     t.logger,
		TreeID:     t.id,
		Hooks:      t.hooks,
	}
	return t, nil
}

// Tick advances the frame counter and ticks the root once.
// An Error status is logged and returned; it never interrupts the caller.
func (t *TreeRoot) Tick() domain.Status {
	t.frame++
	t.tc.Frame = t.frame
	t.tc.Now = t.clock()

	status := t.root.Tick(&t.tc)
	if status == domain.StatusError {
		t.logger.Warn("tree tick reported error", "frame", t.frame, "root", t.root.Type())
	}
	return status
}

// Abort abandons the current run of the whole tree.
func (t *TreeRoot) Abort() {
	t.root.Abort(&t.tc)
}

// ID returns the instance identifier.
func (t *TreeRoot) ID() string { return t.id }

// Root returns the root Behavior.
func (t *TreeRoot) Root() *Behavior { return t.root }

// Blackboard returns the shared data store.
func (t *TreeRoot) Blackboard() ports.Blackboard { return t.blackboard }

// Frame returns the number of ticks performed so far.
func (t *TreeRoot) Frame() uint64 { return t.frame }

// Status returns the status of the most recent tick.
func (t *TreeRoot) Status() domain.Status { return t.root.LastStatus() }

// Walk visits every node of the tree in pre-order.
func (t *TreeRoot) Walk(fn func(node *Behavior, depth int) bool) {
	t.root.Walk(fn)
}

// NodeState is a point-in-time view of one node, for diagnostics.
type NodeState struct {
	Index  int                   `json:"index"`
	Type   string                `json:"type"`
	Kind   domain.NodeKind       `json:"kind"`
	Depth  int                   `json:"depth"`
	State  domain.LifecycleState `json:"state"`
	Status domain.Status         `json:"status,omitempty"`
}

// Snapshot returns the state of every node in pre-order.
func (t *TreeRoot) Snapshot() []NodeState {
	var out []NodeState
	t.root.Walk(func(node *Behavior, depth int) bool {
		out = append(out, NodeState{
			Index:  node.Index(),
			Type:   node.Type(),
			Kind:   node.Kind(),
			Depth:  depth,
			State:  node.State(),
			Status: node.LastStatus(),
		})
		return true
	})
	return out
}
