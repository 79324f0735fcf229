package behavior

import (
	"log/slog"
	"time"

	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/ports"
)

// TickContext is passed to every node during a tick.
// A TreeRoot reuses one TickContext for its whole lifetime.
type TickContext struct {
	// Blackboard is the shared data store of the tree.
	Blackboard ports.Blackboard
	// Frame is the 1-based number of the current tick of the tree.
	Frame uint64
	// Now is the time the current tick started.
	Now time.Time
	// Logger is never nil when the context comes from a TreeRoot.
	Logger *slog.Logger
	// TreeID identifies the TreeRoot instance, for diagnostics.
	TreeID string
	// Hooks receive lifecycle events.
	Hooks domain.LifecycleHooks
}

// Log returns tc.Logger, or a discarding logger when none is set.
func (tc *TickContext) Log() *slog.Logger {
	if tc == nil || tc.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return tc.Logger
}

func (tc *TickContext) emit(typ domain.EventType, b *Behavior, status domain.Status) {
	if tc == nil {
		return
	}
	var hook func(*domain.NodeEvent)
	switch typ {
	case domain.EventRunBegin:
		hook = tc.Hooks.OnRunBegin
	case domain.EventTick:
		hook = tc.Hooks.OnTick
	case domain.EventRunEnd:
		hook = tc.Hooks.OnRunEnd
	case domain.EventAbort:
		hook = tc.Hooks.OnAbort
	}
	if hook == nil {
		return
	}
	hook(&domain.NodeEvent{
		Timestamp: tc.Now,
		Type:      typ,
		TreeID:    tc.TreeID,
		Frame:     tc.Frame,
		Index:     b.index,
		NodeType:  b.typeID,
		Kind:      b.kind,
		Node:      b,
		Status:    status,
	})
}
