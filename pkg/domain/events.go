package domain

import (
	"time"
)

// EventType defines the category of a node event.
type EventType string

const (
	EventRunBegin EventType = "run_begin"
	EventTick     EventType = "tick"
	EventRunEnd   EventType = "run_end"
	EventAbort    EventType = "abort"
)

// NodeEvent describes one lifecycle step of one node.
type NodeEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	TreeID    string    `json:"tree_id,omitempty"`
	Frame     uint64    `json:"frame"`
	Index     int       `json:"index"`
	NodeType  string    `json:"node_type"`
	Kind      NodeKind  `json:"kind"`
	Status    Status    `json:"status,omitempty"` // Set for EventTick and EventRunEnd.

	// Node is the emitting node. It is comparable and stays the same for
	// the life of the tree, so it can key per-node state even when Index
	// is unknown (-1).
	Node any `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any field may be nil. Hooks run synchronously inside the tick.
type LifecycleHooks struct {
	OnRunBegin func(*NodeEvent)
	OnTick     func(*NodeEvent)
	OnRunEnd   func(*NodeEvent)
	OnAbort    func(*NodeEvent)
}

// IsZero reports whether no hook is set.
func (h LifecycleHooks) IsZero() bool {
	return h.OnRunBegin == nil && h.OnTick == nil && h.OnRunEnd == nil && h.OnAbort == nil
}
