package cli

import (
	"context"
	"log/slog"
	"sync"
	"time"

	httpAdapter "github.com/zorpastaman/behaviortree/pkg/adapters/http"
	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// Frame is what the loop reports after every tick.
type Frame struct {
	Number uint64
	Status domain.Status
	Nodes  []behavior.NodeState
}

// LoopOptions configures a Loop.
type LoopOptions struct {
	// Interval between ticks. Zero ticks as fast as possible.
	Interval time.Duration
	// MaxFrames stops the loop after this many ticks. Zero means no limit.
	MaxFrames uint64
	// Repeat keeps ticking after the root finishes a run.
	Repeat bool
	// OnFrame is called after every tick, outside the lock.
	OnFrame func(Frame)
	// Streams receives every frame as JSON, for SSE subscribers.
	Streams *httpAdapter.StreamManager
	Logger  *slog.Logger
}

// Loop ticks a tree on a fixed interval and serves snapshots of it.
// Ticks and snapshots are serialised, so State is safe to call from HTTP
// handlers while the loop runs.
type Loop struct {
	mu   sync.Mutex
	tree *behavior.TreeRoot
	opts LoopOptions
}

// NewLoop creates a loop over tree.
func NewLoop(tree *behavior.TreeRoot, opts LoopOptions) *Loop {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Loop{tree: tree, opts: opts}
}

// Step ticks the tree once and returns the resulting frame.
func (l *Loop) Step() Frame {
	l.mu.Lock()
	status := l.tree.Tick()
	f := Frame{Number: l.tree.Frame(), Status: status, Nodes: l.tree.Snapshot()}
	l.mu.Unlock()

	if l.opts.OnFrame != nil {
		l.opts.OnFrame(f)
	}
	if l.opts.Streams != nil {
		if err := l.opts.Streams.Publish(l.State()); err != nil {
			l.opts.Logger.Error("frame publish failed", "frame", f.Number, "error", err)
		}
	}
	return f
}

// Run ticks until ctx is done, the frame limit is reached or, unless
// Repeat is set, the root finishes a run. It returns the last status.
func (l *Loop) Run(ctx context.Context) (domain.Status, error) {
	var ticker *time.Ticker
	if l.opts.Interval > 0 {
		ticker = time.NewTicker(l.opts.Interval)
		defer ticker.Stop()
	}

	last := domain.StatusInvalid
	for {
		if err := ctx.Err(); err != nil {
			return last, err
		}

		f := l.Step()
		last = f.Status

		if l.opts.MaxFrames > 0 && f.Number >= l.opts.MaxFrames {
			l.opts.Logger.Debug("frame limit reached", "frames", f.Number)
			return last, nil
		}
		if !l.opts.Repeat && last.IsTerminal() {
			l.opts.Logger.Debug("tree finished", "frame", f.Number, "status", last.String())
			return last, nil
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return last, ctx.Err()
			case <-ticker.C:
			}
		}
	}
}

// State implements the HTTP adapter's Tree interface.
func (l *Loop) State() httpAdapter.State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return httpAdapter.State{
		TreeID:     l.tree.ID(),
		Frame:      l.tree.Frame(),
		Status:     l.tree.Status(),
		Nodes:      l.tree.Snapshot(),
		Blackboard: BlackboardValues(l.tree.Blackboard()),
	}
}
