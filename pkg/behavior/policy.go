package behavior

import (
	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// LeafBehavior is the domain logic of a leaf node.
// Implementations read and write only through tc.Blackboard.
type LeafBehavior interface {
	// Begin fires once at the start of every run, before the first Tick.
	Begin(tc *TickContext)
	// Tick executes one step of the current run.
	Tick(tc *TickContext) domain.Status
}

// DecoratorBehavior is the policy of a decorator node.
// Tick must not tick child more than once unless the policy documents otherwise.
type DecoratorBehavior interface {
	Begin(tc *TickContext)
	Tick(tc *TickContext, child *Behavior) domain.Status
}

// CompositeBehavior is the evaluation policy of a composite node.
// Children are passed in construction order and must be ticked one at a time.
type CompositeBehavior interface {
	Begin(tc *TickContext)
	Tick(tc *TickContext, children []*Behavior) domain.Status
}

// Aborter is implemented by policies that hold per-run state which must be
// released when a Running node is abandoned by its parent.
type Aborter interface {
	Abort(tc *TickContext)
}

// LeafFunc adapts a plain function to a LeafBehavior with no per-run setup.
type LeafFunc func(tc *TickContext) domain.Status

// Begin does nothing.
func (f LeafFunc) Begin(*TickContext) {}

// Tick calls f.
func (f LeafFunc) Tick(tc *TickContext) domain.Status {
	return f(tc)
}

// LeafFuncs adapts a pair of functions to a LeafBehavior.
// OnBegin may be nil.
type LeafFuncs struct {
	OnBegin func(tc *TickContext)
	OnTick  func(tc *TickContext) domain.Status
}

// Begin calls OnBegin when it is set.
func (f LeafFuncs) Begin(tc *TickContext) {
	if f.OnBegin != nil {
		f.OnBegin(tc)
	}
}

// Tick calls OnTick. A nil OnTick reports domain.StatusError.
func (f LeafFuncs) Tick(tc *TickContext) domain.Status {
	if f.OnTick == nil {
		return domain.StatusError
	}
	return f.OnTick(tc)
}
