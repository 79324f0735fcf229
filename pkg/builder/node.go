package builder

import (
	"fmt"

	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/registry"
)

// NodeBuilder is the construction record of one node: its kind, type
// identifier, arguments, the factory producing its behavior, and the
// indices of its children in the builder arena.
type NodeBuilder struct {
	kind    domain.NodeKind
	typeID  string
	args    []any
	factory func() (any, error)

	child    int   // decorator slot, domain.NoChild until attached
	children []int // composite slots, in attach order
}

// NewNodeBuilder resolves typeID in reg and returns a record for it.
// Pass domain.KindInvalid to take the kind from the registry.
func NewNodeBuilder(reg *registry.Registry, kind domain.NodeKind, typeID string, args ...any) (*NodeBuilder, error) {
	if reg == nil {
		return nil, fmt.Errorf("%q: no registry: %w", typeID, domain.ErrUnknownNodeType)
	}
	entry, err := reg.Resolve(typeID, kind, args)
	if err != nil {
		return nil, err
	}

	args = append([]any(nil), args...)
	nb := newNodeBuilder(entry.Kind, typeID, args)
	switch entry.Kind {
	case domain.KindLeaf:
		nb.factory = func() (any, error) { return entry.NewLeaf(args) }
	case domain.KindDecorator:
		nb.factory = func() (any, error) { return entry.NewDecorator(args) }
	case domain.KindComposite:
		nb.factory = func() (any, error) { return entry.NewComposite(args) }
	}
	return nb, nil
}

// LeafNode returns a record for a leaf constructed in code.
// The value is shared by every tree built from the record.
func LeafNode(typeID string, leaf behavior.LeafBehavior) *NodeBuilder {
	nb := newNodeBuilder(domain.KindLeaf, typeID, nil)
	nb.factory = func() (any, error) { return leaf, nil }
	return nb
}

// DecoratorNode returns a record for a decorator constructed in code.
func DecoratorNode(typeID string, decorator behavior.DecoratorBehavior) *NodeBuilder {
	nb := newNodeBuilder(domain.KindDecorator, typeID, nil)
	nb.factory = func() (any, error) { return decorator, nil }
	return nb
}

// CompositeNode returns a record for a composite constructed in code.
func CompositeNode(typeID string, composite behavior.CompositeBehavior) *NodeBuilder {
	nb := newNodeBuilder(domain.KindComposite, typeID, nil)
	nb.factory = func() (any, error) { return composite, nil }
	return nb
}

func newNodeBuilder(kind domain.NodeKind, typeID string, args []any) *NodeBuilder {
	return &NodeBuilder{
		kind:   kind,
		typeID: typeID,
		args:   args,
		child:  domain.NoChild,
	}
}

// Kind returns the node kind.
func (nb *NodeBuilder) Kind() domain.NodeKind { return nb.kind }

// Type returns the type identifier.
func (nb *NodeBuilder) Type() string { return nb.typeID }

// Args returns a copy of the construction arguments.
func (nb *NodeBuilder) Args() []any { return append([]any(nil), nb.args...) }

// Children returns the child slots: none for a leaf, exactly one for a
// decorator (domain.NoChild when unset), the attached indices for a
// composite.
func (nb *NodeBuilder) Children() []int {
	switch nb.kind {
	case domain.KindDecorator:
		return []int{nb.child}
	case domain.KindComposite:
		return append([]int(nil), nb.children...)
	default:
		return nil
	}
}

func (nb *NodeBuilder) addChild(index int) error {
	switch nb.kind {
	case domain.KindLeaf:
		return domain.ErrLeafChild
	case domain.KindDecorator:
		if nb.child != domain.NoChild {
			return domain.ErrDecoratorFull
		}
		nb.child = index
		return nil
	case domain.KindComposite:
		nb.children = append(nb.children, index)
		return nil
	default:
		return fmt.Errorf("node kind %s cannot accept children", nb.kind)
	}
}

// construct builds the node's behavior from already-built children.
// A composite with a single child is built and reported as degenerate.
func (nb *NodeBuilder) construct(index int, children []*behavior.Behavior) (*behavior.Behavior, *Warning, error) {
	fail := func(err error) (*behavior.Behavior, *Warning, error) {
		return nil, nil, &domain.BuildError{Op: "Build", Index: index, Kind: nb.kind, Type: nb.typeID, Err: err}
	}

	switch nb.kind {
	case domain.KindLeaf:
		if len(children) > 0 {
			return fail(domain.ErrLeafChild)
		}
	case domain.KindDecorator:
		if len(children) == 0 {
			return fail(domain.ErrMissingChild)
		}
		if len(children) > 1 {
			return fail(domain.ErrDecoratorFull)
		}
	case domain.KindComposite:
		if len(children) == 0 {
			return fail(domain.ErrEmptyComposite)
		}
	}

	payload, err := nb.factory()
	if err != nil {
		return fail(fmt.Errorf("%w: %w", domain.ErrInvalidArgs, err))
	}

	opts := []behavior.NodeOption{behavior.WithType(nb.typeID), behavior.WithIndex(index)}
	var b *behavior.Behavior
	switch nb.kind {
	case domain.KindLeaf:
		leaf, _ := payload.(behavior.LeafBehavior)
		b, err = behavior.NewLeaf(leaf, opts...)
	case domain.KindDecorator:
		decorator, _ := payload.(behavior.DecoratorBehavior)
		b, err = behavior.NewDecorator(decorator, children[0], opts...)
	case domain.KindComposite:
		composite, _ := payload.(behavior.CompositeBehavior)
		b, err = behavior.NewComposite(composite, children, opts...)
	default:
		err = fmt.Errorf("node kind %s cannot be built", nb.kind)
	}
	if err != nil {
		return fail(err)
	}

	if nb.kind == domain.KindComposite && len(children) == 1 {
		return b, &Warning{Index: index, Type: nb.typeID, Message: "composite has a single child"}, nil
	}
	return b, nil, nil
}

// materialize builds the subtree rooted at all[index], children first.
func (nb *NodeBuilder) materialize(all []*NodeBuilder, index int, warn func(Warning)) (*behavior.Behavior, error) {
	var slots []int
	switch nb.kind {
	case domain.KindDecorator:
		if nb.child != domain.NoChild {
			slots = []int{nb.child}
		}
	case domain.KindComposite:
		slots = nb.children
	}

	children := make([]*behavior.Behavior, 0, len(slots))
	for _, i := range slots {
		child, err := all[i].materialize(all, i, warn)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	b, w, err := nb.construct(index, children)
	if err != nil {
		return nil, err
	}
	if w != nil {
		warn(*w)
	}
	return b, nil
}
