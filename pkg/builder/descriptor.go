package builder

import (
	"errors"
	"fmt"

	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/registry"
)

// FromDescriptor validates desc and replays it, in pre-order from the root,
// as Add and Complete calls on a new TreeBuilder.
//
// Structural problems in the layout are reported together in one
// *domain.BuildError wrapping domain.ErrInvalidDescriptor. Records not
// reachable from the root are skipped with a warning. A decorator whose
// only slot is domain.NoChild is replayed as is, so Build reports it.
func FromDescriptor(reg *registry.Registry, desc *domain.TreeDescriptor, opts ...Option) (*TreeBuilder, error) {
	b := New(reg, opts...)
	if desc == nil {
		err := &domain.BuildError{Op: "FromDescriptor", Index: -1, Err: fmt.Errorf("%w: descriptor is nil", domain.ErrInvalidDescriptor)}
		return b.fail(err), err
	}
	if len(desc.Nodes) == 0 {
		err := &domain.BuildError{Op: "FromDescriptor", Index: -1, Err: domain.ErrEmptyTree}
		return b.fail(err), err
	}

	if issues := validateDescriptor(reg, desc); len(issues) > 0 {
		err := &domain.BuildError{
			Op:    "FromDescriptor",
			Index: -1,
			Err:   fmt.Errorf("%w: %w", domain.ErrInvalidDescriptor, errors.Join(issues...)),
		}
		return b.fail(err), err
	}

	reached := make([]bool, len(desc.Nodes))
	var replay func(i int)
	replay = func(i int) {
		reached[i] = true
		rec := desc.Nodes[i]
		b.AddBehavior(rec.Type, rec.Args...)
		for _, c := range rec.Children {
			if c != domain.NoChild {
				replay(c)
			}
		}
		b.Complete()
	}
	replay(desc.Root)

	for i, ok := range reached {
		if !ok {
			w := Warning{Index: i, Type: desc.Nodes[i].Type, Message: "record is not reachable from the root"}
			b.warn(w)
			b.warnings = append(b.warnings, w)
		}
	}
	return b, b.Err()
}

func validateDescriptor(reg *registry.Registry, desc *domain.TreeDescriptor) []error {
	var issues []error
	n := len(desc.Nodes)
	if desc.Root < 0 || desc.Root >= n {
		return []error{fmt.Errorf("root index %d out of range [0,%d)", desc.Root, n)}
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}

	for i, rec := range desc.Nodes {
		var entry *registry.Entry
		if reg != nil {
			entry, _ = reg.Lookup(rec.Type)
		}
		if entry == nil {
			issues = append(issues, fmt.Errorf("node %d: %q: %w", i, rec.Type, domain.ErrUnknownNodeType))
		} else {
			switch slots := len(rec.Children); entry.Kind {
			case domain.KindLeaf:
				if slots != 0 {
					issues = append(issues, fmt.Errorf("node %d: leaf %q has %d child slots", i, rec.Type, slots))
				}
			case domain.KindDecorator:
				if slots != 1 {
					issues = append(issues, fmt.Errorf("node %d: decorator %q has %d child slots, want 1", i, rec.Type, slots))
				}
			case domain.KindComposite:
				if slots == 0 {
					issues = append(issues, fmt.Errorf("node %d: composite %q has no child slots", i, rec.Type))
				}
			}
		}

		for _, c := range rec.Children {
			switch {
			case c == domain.NoChild:
				if entry != nil && entry.Kind != domain.KindDecorator {
					issues = append(issues, fmt.Errorf("node %d: unset child slot outside a decorator", i))
				}
			case c < 0 || c >= n:
				issues = append(issues, fmt.Errorf("node %d: child index %d out of range", i, c))
			case c == desc.Root:
				issues = append(issues, fmt.Errorf("node %d: references the root %d as a child", i, c))
			case parent[c] != -1:
				issues = append(issues, fmt.Errorf("node %d: child %d already belongs to node %d", i, c, parent[c]))
			default:
				parent[c] = i
			}
		}
	}
	return issues
}

// ToDescriptor exports the builder's records. Indices are construction
// order, so the root is always record 0.
func (b *TreeBuilder) ToDescriptor(name string) (*domain.TreeDescriptor, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.nodes) == 0 {
		return nil, &domain.BuildError{Op: "ToDescriptor", Index: -1, Err: domain.ErrEmptyTree}
	}
	desc := &domain.TreeDescriptor{
		Name:  name,
		Root:  0,
		Nodes: make([]domain.NodeRecord, len(b.nodes)),
	}
	for i, nb := range b.nodes {
		desc.Nodes[i] = domain.NodeRecord{
			Type:     nb.typeID,
			Args:     nb.Args(),
			Children: nb.Children(),
		}
	}
	return desc, nil
}
