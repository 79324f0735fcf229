// Package gobt bridges trees of this module and github.com/joeycumines/go-behaviortree.
//
// A go-behaviortree node can run as a leaf inside a Behavior tree, and a
// TreeRoot can be exported as a go-behaviortree node so an existing
// ticker drives it.
package gobt

import (
	"errors"
	"fmt"

	bt "github.com/joeycumines/go-behaviortree"
	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/registry"
)

// ErrTreeErrored is returned by exported nodes when the tree reports
// domain.StatusError. go-behaviortree has no error status of its own.
var ErrTreeErrored = errors.New("gobt: tree reported error status")

// FromStatus converts a go-behaviortree status.
// Unknown values map to domain.StatusInvalid.
func FromStatus(s bt.Status) domain.Status {
	switch s {
	case bt.Success:
		return domain.StatusSuccess
	case bt.Failure:
		return domain.StatusFailure
	case bt.Running:
		return domain.StatusRunning
	default:
		return domain.StatusInvalid
	}
}

// ToStatus converts a status to go-behaviortree.
// domain.StatusError and invalid statuses are reported as bt.Failure with a
// non-nil error.
func ToStatus(s domain.Status) (bt.Status, error) {
	switch s {
	case domain.StatusSuccess:
		return bt.Success, nil
	case domain.StatusFailure:
		return bt.Failure, nil
	case domain.StatusRunning:
		return bt.Running, nil
	case domain.StatusError:
		return bt.Failure, ErrTreeErrored
	default:
		return bt.Failure, fmt.Errorf("gobt: invalid status %d", int(s))
	}
}

// Leaf runs a go-behaviortree node as a leaf.
// A tick error or an unknown status becomes domain.StatusError.
type Leaf struct {
	node bt.Node
}

// NewLeaf wraps node.
func NewLeaf(node bt.Node) *Leaf {
	return &Leaf{node: node}
}

func (l *Leaf) Begin(*behavior.TickContext) {}

func (l *Leaf) Tick(tc *behavior.TickContext) domain.Status {
	status, err := l.node.Tick()
	if err != nil {
		tc.Log().Warn("go-behaviortree node failed", "frame", tc.Frame, "error", err)
		return domain.StatusError
	}
	out := FromStatus(status)
	if out == domain.StatusInvalid {
		tc.Log().Warn("go-behaviortree node returned unknown status", "frame", tc.Frame, "status", int(status))
		return domain.StatusError
	}
	return out
}

// Register adds a parameterless leaf type that runs a fresh node from
// factory each time a tree is built.
func Register(reg *registry.Registry, typeID string, factory func() bt.Node, opts ...registry.Option) {
	reg.RegisterLeaf(typeID, nil, func(registry.Args) (behavior.LeafBehavior, error) {
		node := factory()
		if node == nil {
			return nil, fmt.Errorf("gobt: factory for %q returned nil node", typeID)
		}
		return NewLeaf(node), nil
	}, opts...)
}

// Export returns a go-behaviortree node that ticks tree once per tick.
// The node has no children of its own.
func Export(tree *behavior.TreeRoot) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		return ToStatus(tree.Tick())
	})
}
