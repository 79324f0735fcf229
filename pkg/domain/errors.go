package domain

import (
	"errors"
	"fmt"
)

// Structural build errors. They are fatal to the build operation and are
// always reported wrapped in a *BuildError.
var (
	// ErrSecondRoot is returned when a node is added while no node is open
	// but the tree already has a root.
	ErrSecondRoot = errors.New("tree already has a root")
	// ErrLeafChild is returned when a child is attached to a leaf.
	ErrLeafChild = errors.New("leaf cannot accept children")
	// ErrDecoratorFull is returned when a second child is attached to a decorator.
	ErrDecoratorFull = errors.New("decorator already has a child")
	// ErrUnmatchedComplete is returned by Complete when no node is open.
	ErrUnmatchedComplete = errors.New("complete without matching open node")
	// ErrUnfinishedTree is returned by Build while nodes are still open.
	ErrUnfinishedTree = errors.New("tree has unfinished nodes")
	// ErrEmptyTree is returned by Build when no node was added.
	ErrEmptyTree = errors.New("tree has no nodes")
	// ErrMissingChild is returned when a decorator is built without a child.
	ErrMissingChild = errors.New("decorator has no child")
	// ErrEmptyComposite is returned when a composite is built without children.
	ErrEmptyComposite = errors.New("composite has no children")
	// ErrUnknownNodeType is returned when a type identifier is not registered.
	ErrUnknownNodeType = errors.New("unknown node type")
	// ErrKindMismatch is returned when a registered type is added as the wrong kind.
	ErrKindMismatch = errors.New("node kind mismatch")
	// ErrInvalidArgs is returned when construction arguments are missing or invalid.
	ErrInvalidArgs = errors.New("invalid construction arguments")
	// ErrInvalidDescriptor is returned when a persisted tree layout is malformed.
	ErrInvalidDescriptor = errors.New("invalid tree descriptor")
)

// ErrTreeNotFound is returned when a tree descriptor cannot be found in a store.
var ErrTreeNotFound = errors.New("tree not found")

// BuildError carries enough context to locate an authoring error.
type BuildError struct {
	Op    string   // Builder operation, e.g. "AddLeaf", "Complete", "Build".
	Index int      // Node index in construction order, -1 when not applicable.
	Kind  NodeKind // Kind of the offending node, if known.
	Type  string   // Type identifier of the offending node, if known.
	Err   error    // One of the sentinel errors above, possibly wrapped.
}

func (e *BuildError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Type == "" {
		return fmt.Sprintf("%s: node %d (%s): %v", e.Op, e.Index, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: node %d (%s %q): %v", e.Op, e.Index, e.Kind, e.Type, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
