package builder

import (
	"errors"

	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// Wrapper describes a tree recursively: a node record and its child
// wrappers. It skips the TreeBuilder stack discipline; structural errors
// still surface when the tree is built.
type Wrapper struct {
	Node     *NodeBuilder
	Children []*Wrapper
}

// Wrap pairs nb with children.
func Wrap(nb *NodeBuilder, children ...*Wrapper) *Wrapper {
	return &Wrapper{Node: nb, Children: children}
}

// AddChild appends child and returns w.
func (w *Wrapper) AddChild(child *Wrapper) *Wrapper {
	w.Children = append(w.Children, child)
	return w
}

// Build materializes the tree, children first. Nodes are indexed in
// pre-order for diagnostics.
func (w *Wrapper) Build() (*behavior.Behavior, error) {
	next := 0
	return w.build(&next)
}

func (w *Wrapper) build(next *int) (*behavior.Behavior, error) {
	index := *next
	*next++
	if w.Node == nil {
		return nil, &domain.BuildError{Op: "Build", Index: index, Err: errors.New("wrapper has no node record")}
	}

	children := make([]*behavior.Behavior, 0, len(w.Children))
	for _, c := range w.Children {
		child, err := c.build(next)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	b, _, err := w.Node.construct(index, children)
	return b, err
}

// Warnings reports degenerate composites in the described tree.
func (w *Wrapper) Warnings() []Warning {
	var out []Warning
	next := 0
	var visit func(*Wrapper)
	visit = func(w *Wrapper) {
		index := next
		next++
		if w.Node != nil && w.Node.kind == domain.KindComposite && len(w.Children) == 1 {
			out = append(out, Warning{Index: index, Type: w.Node.typeID, Message: "composite has a single child"})
		}
		for _, c := range w.Children {
			visit(c)
		}
	}
	visit(w)
	return out
}
