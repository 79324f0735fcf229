package domain

// NodeKind tags the structural variant of a node.
type NodeKind int

const (
	KindInvalid NodeKind = iota
	// KindLeaf nodes own no children.
	KindLeaf
	// KindDecorator nodes own exactly one child.
	KindDecorator
	// KindComposite nodes own an ordered, non-empty list of children.
	KindComposite
)

func (k NodeKind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindDecorator:
		return "decorator"
	case KindComposite:
		return "composite"
	default:
		return "invalid"
	}
}

// LifecycleState is the position of a node inside its current run.
//
//	Unstarted -> Started -> (Started | Succeeded | Failed | Errored)
//
// Ticking a node that is not Started begins a new run.
type LifecycleState int

const (
	StateUnstarted LifecycleState = iota
	StateStarted
	StateSucceeded
	StateFailed
	StateErrored
)

func (s LifecycleState) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StateStarted:
		return "started"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateErrored:
		return "errored"
	default:
		return "invalid"
	}
}

// IsTerminal reports whether the last run has finished.
func (s LifecycleState) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateErrored
}

// StateFor returns the lifecycle state a node is left in after returning status.
func StateFor(status Status) LifecycleState {
	switch status {
	case StatusRunning:
		return StateStarted
	case StatusSuccess:
		return StateSucceeded
	case StatusFailure:
		return StateFailed
	default:
		return StateErrored
	}
}

// MarshalText encodes the kind by name.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MarshalText encodes the state by name.
func (s LifecycleState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
