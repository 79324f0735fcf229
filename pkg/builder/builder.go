package builder

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/ports"
	"github.com/zorpastaman/behaviortree/pkg/registry"
)

// TreeBuilder assembles a tree from a linear sequence of Add and Complete
// calls. It is not safe for concurrent use.
type TreeBuilder struct {
	registry *registry.Registry
	logger   *slog.Logger

	nodes []*NodeBuilder
	stack []int

	err           error
	warnings      []Warning
	buildWarnings []Warning
}

// Option configures a TreeBuilder.
type Option func(*TreeBuilder)

// WithLogger sets the logger for authoring errors and warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(b *TreeBuilder) {
		b.logger = logger
	}
}

// New creates an empty builder resolving type identifiers in reg.
// reg may be nil when only in-code behaviors are added.
func New(reg *registry.Registry, opts ...Option) *TreeBuilder {
	b := &TreeBuilder{registry: reg}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.New(slog.DiscardHandler)
	}
	return b
}

// AddLeaf adds and opens a registered leaf.
func (b *TreeBuilder) AddLeaf(typeID string, args ...any) *TreeBuilder {
	return b.addRegistered("AddLeaf", domain.KindLeaf, typeID, args)
}

// AddDecorator adds and opens a registered decorator.
func (b *TreeBuilder) AddDecorator(typeID string, args ...any) *TreeBuilder {
	return b.addRegistered("AddDecorator", domain.KindDecorator, typeID, args)
}

// AddComposite adds and opens a registered composite.
func (b *TreeBuilder) AddComposite(typeID string, args ...any) *TreeBuilder {
	return b.addRegistered("AddComposite", domain.KindComposite, typeID, args)
}

// AddBehavior adds and opens a registered node of whatever kind typeID has.
func (b *TreeBuilder) AddBehavior(typeID string, args ...any) *TreeBuilder {
	return b.addRegistered("AddBehavior", domain.KindInvalid, typeID, args)
}

// AddLeafBehavior adds and opens a leaf constructed in code.
func (b *TreeBuilder) AddLeafBehavior(typeID string, leaf behavior.LeafBehavior) *TreeBuilder {
	return b.Add(LeafNode(typeID, leaf))
}

// AddDecoratorBehavior adds and opens a decorator constructed in code.
func (b *TreeBuilder) AddDecoratorBehavior(typeID string, decorator behavior.DecoratorBehavior) *TreeBuilder {
	return b.Add(DecoratorNode(typeID, decorator))
}

// AddCompositeBehavior adds and opens a composite constructed in code.
func (b *TreeBuilder) AddCompositeBehavior(typeID string, composite behavior.CompositeBehavior) *TreeBuilder {
	return b.Add(CompositeNode(typeID, composite))
}

func (b *TreeBuilder) addRegistered(op string, kind domain.NodeKind, typeID string, args []any) *TreeBuilder {
	if b.err != nil {
		return b
	}
	nb, err := NewNodeBuilder(b.registry, kind, typeID, args...)
	if err != nil {
		return b.fail(&domain.BuildError{Op: op, Index: len(b.nodes), Kind: kind, Type: typeID, Err: err})
	}
	return b.add(op, nb)
}

// Add appends nb to the arena, attaches it to the open node and opens it.
// The first node added becomes the root; adding a node when every node has
// been completed fails with domain.ErrSecondRoot.
func (b *TreeBuilder) Add(nb *NodeBuilder) *TreeBuilder {
	if b.err != nil {
		return b
	}
	if nb == nil {
		return b.fail(&domain.BuildError{Op: "Add", Index: len(b.nodes), Err: errors.New("node builder is nil")})
	}
	return b.add("Add", nb)
}

func (b *TreeBuilder) add(op string, nb *NodeBuilder) *TreeBuilder {
	i := len(b.nodes)
	if i > 0 {
		if len(b.stack) == 0 {
			return b.fail(&domain.BuildError{Op: op, Index: i, Kind: nb.kind, Type: nb.typeID, Err: domain.ErrSecondRoot})
		}
		top := b.stack[len(b.stack)-1]
		parent := b.nodes[top]
		if err := parent.addChild(i); err != nil {
			return b.fail(&domain.BuildError{Op: op, Index: top, Kind: parent.kind, Type: parent.typeID, Err: err})
		}
	}
	b.nodes = append(b.nodes, nb)
	b.stack = append(b.stack, i)
	return b
}

// Complete closes the most recently opened node.
func (b *TreeBuilder) Complete() *TreeBuilder {
	if b.err != nil {
		return b
	}
	if len(b.stack) == 0 {
		return b.fail(&domain.BuildError{Op: "Complete", Index: -1, Err: domain.ErrUnmatchedComplete})
	}
	b.stack = b.stack[:len(b.stack)-1]
	return b
}

// Clear discards every record, the open-node stack, the recorded error and
// all warnings.
func (b *TreeBuilder) Clear() *TreeBuilder {
	b.nodes = nil
	b.stack = nil
	b.err = nil
	b.warnings = nil
	b.buildWarnings = nil
	return b
}

func (b *TreeBuilder) fail(err *domain.BuildError) *TreeBuilder {
	b.err = err
	b.logger.Error("tree build failed", "op", err.Op, "index", err.Index, "type", err.Type, "error", err.Err)
	return b
}

func (b *TreeBuilder) warn(w Warning) {
	b.logger.Warn("tree build warning", "index", w.Index, "type", w.Type, "message", w.Message)
}

// Err returns the first error recorded by Add or Complete, if any.
func (b *TreeBuilder) Err() error { return b.err }

// Warnings returns the warnings of the assembly and of the last Build.
func (b *TreeBuilder) Warnings() []Warning {
	out := append([]Warning(nil), b.warnings...)
	return append(out, b.buildWarnings...)
}

// Len returns the number of nodes added so far.
func (b *TreeBuilder) Len() int { return len(b.nodes) }

// Open returns the number of nodes that are added but not completed.
func (b *TreeBuilder) Open() int { return len(b.stack) }

// Build materializes the tree bottom-up and returns its root.
// It does not consume the builder: calling Build again creates a new tree.
func (b *TreeBuilder) Build() (*behavior.Behavior, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.stack) > 0 {
		top := b.stack[len(b.stack)-1]
		return nil, b.buildFailed(&domain.BuildError{
			Op: "Build", Index: top, Kind: b.nodes[top].kind, Type: b.nodes[top].typeID,
			Err: fmt.Errorf("%d open: %w", len(b.stack), domain.ErrUnfinishedTree),
		})
	}
	if len(b.nodes) == 0 {
		return nil, b.buildFailed(&domain.BuildError{Op: "Build", Index: -1, Err: domain.ErrEmptyTree})
	}

	b.buildWarnings = nil
	root, err := b.nodes[0].materialize(b.nodes, 0, func(w Warning) {
		b.warn(w)
		b.buildWarnings = append(b.buildWarnings, w)
	})
	if err != nil {
		var be *domain.BuildError
		if errors.As(err, &be) {
			return nil, b.buildFailed(be)
		}
		return nil, err
	}
	return root, nil
}

func (b *TreeBuilder) buildFailed(err *domain.BuildError) error {
	b.logger.Error("tree build failed", "op", err.Op, "index", err.Index, "type", err.Type, "error", err.Err)
	return err
}

// BuildRoot builds the tree and pairs it with bb.
func (b *TreeBuilder) BuildRoot(bb ports.Blackboard, opts ...behavior.RootOption) (*behavior.TreeRoot, error) {
	root, err := b.Build()
	if err != nil {
		return nil, err
	}
	return behavior.NewTreeRoot(root, bb, opts...)
}

// Dump renders the records reachable from the root as an indented outline,
// one node per line with its arguments. Open nodes are marked with "...".
func (b *TreeBuilder) Dump() string {
	if len(b.nodes) == 0 {
		return ""
	}
	open := make(map[int]bool, len(b.stack))
	for _, i := range b.stack {
		open[i] = true
	}

	var sb strings.Builder
	var visit func(i, depth int)
	visit = func(i, depth int) {
		nb := b.nodes[i]
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(nb.typeID)
		if len(nb.args) > 0 {
			sb.WriteString(formatArgs(nb.args))
		}
		if open[i] {
			sb.WriteString(" ...")
		}
		sb.WriteByte('\n')
		for _, c := range nb.Children() {
			if c != domain.NoChild {
				visit(c, depth+1)
			}
		}
	}
	visit(0, 0)
	return sb.String()
}

func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			parts[i] = fmt.Sprintf("%q", s)
		} else {
			parts[i] = fmt.Sprint(a)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
