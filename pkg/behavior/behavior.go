package behavior

import (
	"errors"
	"fmt"

	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// Behavior is a node of a materialized tree.
//
// It is a closed tagged union over domain.NodeKind: exactly one of leaf,
// decorator or composite is set, matching kind. Children are owned
// exclusively and hold no reference back to their parent.
type Behavior struct {
	kind   domain.NodeKind
	typeID string
	index  int

	state  domain.LifecycleState
	status domain.Status

	leaf      LeafBehavior
	decorator DecoratorBehavior
	composite CompositeBehavior
	children  []*Behavior
}

// NodeOption configures the diagnostic identity of a Behavior.
type NodeOption func(*Behavior)

// WithType sets the type identifier reported in events and dumps.
func WithType(typeID string) NodeOption {
	return func(b *Behavior) {
		b.typeID = typeID
	}
}

// WithIndex sets the construction index reported in events and dumps.
func WithIndex(index int) NodeOption {
	return func(b *Behavior) {
		b.index = index
	}
}

func newBehavior(kind domain.NodeKind, payload any, opts []NodeOption) *Behavior {
	b := &Behavior{kind: kind, index: -1}
	for _, opt := range opts {
		opt(b)
	}
	if b.typeID == "" {
		b.typeID = fmt.Sprintf("%T", payload)
	}
	return b
}

// NewLeaf creates a leaf node.
func NewLeaf(leaf LeafBehavior, opts ...NodeOption) (*Behavior, error) {
	if leaf == nil {
		return nil, errors.New("leaf behavior is nil")
	}
	b := newBehavior(domain.KindLeaf, leaf, opts)
	b.leaf = leaf
	return b, nil
}

// NewDecorator creates a decorator node owning child.
// A nil child is a structural error: decorators cannot be fixed at runtime.
func NewDecorator(decorator DecoratorBehavior, child *Behavior, opts ...NodeOption) (*Behavior, error) {
	if decorator == nil {
		return nil, errors.New("decorator behavior is nil")
	}
	if child == nil {
		return nil, domain.ErrMissingChild
	}
	b := newBehavior(domain.KindDecorator, decorator, opts)
	b.decorator = decorator
	b.children = []*Behavior{child}
	return b, nil
}

// NewComposite creates a composite node owning children, in order.
// The slice is copied.
func NewComposite(composite CompositeBehavior, children []*Behavior, opts ...NodeOption) (*Behavior, error) {
	if composite == nil {
		return nil, errors.New("composite behavior is nil")
	}
	if len(children) == 0 {
		return nil, domain.ErrEmptyComposite
	}
	for i, child := range children {
		if child == nil {
			return nil, fmt.Errorf("composite child %d is nil", i)
		}
	}
	b := newBehavior(domain.KindComposite, composite, opts)
	b.composite = composite
	b.children = append([]*Behavior(nil), children...)
	return b, nil
}

// Tick runs one step of the node and returns its status.
//
// If the node is not Started a new run begins: the policy's Begin fires
// before its Tick. A policy returning an invalid status is reported as
// domain.StatusError.
func (b *Behavior) Tick(tc *TickContext) domain.Status {
	if b.state != domain.StateStarted {
		b.state = domain.StateStarted
		b.begin(tc)
		tc.emit(domain.EventRunBegin, b, domain.StatusInvalid)
	}

	status := b.execute(tc)
	if !status.IsValid() {
		tc.Log().Error("node returned invalid status",
			"index", b.index,
			"type", b.typeID,
			"status", int(status),
		)
		status = domain.StatusError
	}

	b.status = status
	b.state = domain.StateFor(status)

	tc.emit(domain.EventTick, b, status)
	if status.IsTerminal() {
		tc.emit(domain.EventRunEnd, b, status)
	}
	return status
}

func (b *Behavior) begin(tc *TickContext) {
	switch b.kind {
	case domain.KindLeaf:
		b.leaf.Begin(tc)
	case domain.KindDecorator:
		b.decorator.Begin(tc)
	case domain.KindComposite:
		b.composite.Begin(tc)
	}
}

func (b *Behavior) execute(tc *TickContext) domain.Status {
	switch b.kind {
	case domain.KindLeaf:
		return b.leaf.Tick(tc)
	case domain.KindDecorator:
		return b.decorator.Tick(tc, b.children[0])
	case domain.KindComposite:
		return b.composite.Tick(tc, b.children)
	default:
		return domain.StatusError
	}
}

// Abort abandons a Running run. Started descendants are aborted first,
// then the node's own policy is notified if it implements Aborter, and the
// node returns to Unstarted so its next tick begins a new run.
// Aborting a node that is not Started does nothing.
func (b *Behavior) Abort(tc *TickContext) {
	if b.state != domain.StateStarted {
		return
	}
	for _, child := range b.children {
		child.Abort(tc)
	}
	if aborter, ok := b.payload().(Aborter); ok {
		aborter.Abort(tc)
	}
	b.state = domain.StateUnstarted
	b.status = domain.StatusInvalid
	tc.emit(domain.EventAbort, b, domain.StatusInvalid)
}

func (b *Behavior) payload() any {
	switch b.kind {
	case domain.KindLeaf:
		return b.leaf
	case domain.KindDecorator:
		return b.decorator
	case domain.KindComposite:
		return b.composite
	default:
		return nil
	}
}

// Kind returns the structural variant of the node.
func (b *Behavior) Kind() domain.NodeKind { return b.kind }

// Type returns the type identifier of the node.
func (b *Behavior) Type() string { return b.typeID }

// Index returns the construction index of the node, or -1 if unknown.
func (b *Behavior) Index() int { return b.index }

// State returns the lifecycle state of the node.
func (b *Behavior) State() domain.LifecycleState { return b.state }

// LastStatus returns the status of the most recent tick, or
// domain.StatusInvalid if the node was never ticked or was aborted.
func (b *Behavior) LastStatus() domain.Status { return b.status }

// Leaf returns the leaf policy, or nil for other kinds.
func (b *Behavior) Leaf() LeafBehavior { return b.leaf }

// Decorator returns the decorator policy, or nil for other kinds.
func (b *Behavior) Decorator() DecoratorBehavior { return b.decorator }

// Composite returns the composite policy, or nil for other kinds.
func (b *Behavior) Composite() CompositeBehavior { return b.composite }

// Child returns the child of a decorator, or nil for other kinds.
func (b *Behavior) Child() *Behavior {
	if b.kind != domain.KindDecorator {
		return nil
	}
	return b.children[0]
}

// Children returns a copy of the node's children in construction order.
func (b *Behavior) Children() []*Behavior {
	return append([]*Behavior(nil), b.children...)
}

// Walk visits the subtree rooted at b in pre-order.
// Returning false from fn skips the children of the visited node.
func (b *Behavior) Walk(fn func(node *Behavior, depth int) bool) {
	b.walk(fn, 0)
}

func (b *Behavior) walk(fn func(*Behavior, int) bool, depth int) {
	if !fn(b, depth) {
		return
	}
	for _, child := range b.children {
		child.walk(fn, depth+1)
	}
}
