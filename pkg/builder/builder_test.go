package builder_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zorpastaman/behaviortree/pkg/adapters/memory"
	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/builder"
	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// scenario adds Composite(A) -> [Leaf(B), Decorator(C) -> Leaf(D)] without
// the final Complete.
func scenario(b *builder.TreeBuilder) *builder.TreeBuilder {
	return b.
		AddComposite("comp", "A").
		AddLeaf("leaf", "B").Complete().
		AddDecorator("deco", "C").
		AddLeaf("leaf", "D").Complete().
		Complete()
}

func TestTreeBuilder_RoundTrip(t *testing.T) {
	rec := &recorder{}
	b := scenario(builder.New(newTestRegistry(rec))).Complete()
	require.NoError(t, b.Err())

	root, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"leaf:B", "leaf:D", "deco:C", "comp:A"}, rec.built,
		"children must be constructed before their parent")
	assert.Equal(t, []string{"comp@0", "leaf@1", "deco@2", "leaf@3"}, names(root))

	require.Equal(t, domain.KindComposite, root.Kind())
	children := root.Children()
	require.Len(t, children, 2)
	assert.Equal(t, domain.KindLeaf, children[0].Kind())
	assert.Equal(t, domain.KindDecorator, children[1].Kind())
	assert.Equal(t, domain.KindLeaf, children[1].Child().Kind())
	assert.Empty(t, b.Warnings())

	tr, err := behavior.NewTreeRoot(root, memory.NewBlackboard())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, tr.Tick())
}

func TestTreeBuilder_MissingComplete(t *testing.T) {
	rec := &recorder{}
	b := scenario(builder.New(newTestRegistry(rec)))
	require.NoError(t, b.Err())
	assert.Equal(t, 1, b.Open())

	root, err := b.Build()
	assert.Nil(t, root)
	assert.ErrorIs(t, err, domain.ErrUnfinishedTree)
	assert.Empty(t, rec.built, "a failed build constructs nothing")

	var be *domain.BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "Build", be.Op)
	assert.Equal(t, 0, be.Index)

	// Completing the root recovers the builder.
	root, err = b.Complete().Build()
	require.NoError(t, err)
	assert.NotNil(t, root)
}

func TestTreeBuilder_StructuralErrors(t *testing.T) {
	tests := []struct {
		name      string
		build     func(*builder.TreeBuilder) *builder.TreeBuilder
		wantErr   error
		wantIndex int
		wantOp    string
	}{
		{
			name: "Unmatched Complete",
			build: func(b *builder.TreeBuilder) *builder.TreeBuilder {
				return b.AddLeaf("leaf").Complete().Complete()
			},
			wantErr:   domain.ErrUnmatchedComplete,
			wantIndex: -1,
			wantOp:    "Complete",
		},
		{
			name: "Second Root",
			build: func(b *builder.TreeBuilder) *builder.TreeBuilder {
				return b.AddLeaf("leaf").Complete().AddLeaf("leaf")
			},
			wantErr:   domain.ErrSecondRoot,
			wantIndex: 1,
			wantOp:    "AddLeaf",
		},
		{
			name: "Leaf Child At Root",
			build: func(b *builder.TreeBuilder) *builder.TreeBuilder {
				return b.AddLeaf("leaf").AddLeaf("leaf")
			},
			wantErr:   domain.ErrLeafChild,
			wantIndex: 0,
			wantOp:    "AddLeaf",
		},
		{
			name: "Leaf Child Deep",
			build: func(b *builder.TreeBuilder) *builder.TreeBuilder {
				return b.AddComposite("comp").
					AddDecorator("deco").
					AddLeaf("leaf").
					AddComposite("comp")
			},
			wantErr:   domain.ErrLeafChild,
			wantIndex: 2,
			wantOp:    "AddComposite",
		},
		{
			name: "Decorator Full",
			build: func(b *builder.TreeBuilder) *builder.TreeBuilder {
				return b.AddDecorator("deco").
					AddLeaf("leaf").Complete().
					AddLeaf("leaf")
			},
			wantErr:   domain.ErrDecoratorFull,
			wantIndex: 0,
			wantOp:    "AddLeaf",
		},
		{
			name: "Unknown Type",
			build: func(b *builder.TreeBuilder) *builder.TreeBuilder {
				return b.AddComposite("comp").AddLeaf("nope")
			},
			wantErr:   domain.ErrUnknownNodeType,
			wantIndex: 1,
			wantOp:    "AddLeaf",
		},
		{
			name: "Kind Mismatch",
			build: func(b *builder.TreeBuilder) *builder.TreeBuilder {
				return b.AddLeaf("comp")
			},
			wantErr:   domain.ErrKindMismatch,
			wantIndex: 0,
			wantOp:    "AddLeaf",
		},
		{
			name: "Invalid Args",
			build: func(b *builder.TreeBuilder) *builder.TreeBuilder {
				return b.AddLeaf("leaf", 42)
			},
			wantErr:   domain.ErrInvalidArgs,
			wantIndex: 0,
			wantOp:    "AddLeaf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.build(builder.New(newTestRegistry(&recorder{})))

			err := b.Err()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var be *domain.BuildError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.wantIndex, be.Index)
			assert.Equal(t, tt.wantOp, be.Op)

			_, buildErr := b.Build()
			assert.Same(t, err, buildErr, "Build reports the recorded error")
		})
	}
}

func TestTreeBuilder_ErrorsAreSticky(t *testing.T) {
	b := builder.New(newTestRegistry(&recorder{}))
	b.Complete()
	first := b.Err()
	require.ErrorIs(t, first, domain.ErrUnmatchedComplete)

	b.AddLeaf("leaf").Complete()
	assert.Same(t, first, b.Err())
	assert.Equal(t, 0, b.Len(), "calls after an error are ignored")

	b.Clear()
	assert.NoError(t, b.Err())
	root, err := b.AddLeaf("leaf").Complete().Build()
	require.NoError(t, err)
	assert.NotNil(t, root)
}

func TestTreeBuilder_EmptyTree(t *testing.T) {
	_, err := builder.New(nil).Build()
	assert.ErrorIs(t, err, domain.ErrEmptyTree)
}

func TestTreeBuilder_DecoratorWithoutChild(t *testing.T) {
	b := builder.New(newTestRegistry(&recorder{})).
		AddComposite("comp").
		AddLeaf("leaf").Complete().
		AddDecorator("deco").Complete().
		Complete()
	require.NoError(t, b.Err(), "the missing child is only detected at build")

	_, err := b.Build()
	assert.ErrorIs(t, err, domain.ErrMissingChild)

	var be *domain.BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 2, be.Index)
	assert.Equal(t, "deco", be.Type)
}

func TestTreeBuilder_DegenerateComposite(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	b := builder.New(newTestRegistry(&recorder{}), builder.WithLogger(logger)).
		AddComposite("comp").
		AddLeaf("leaf").Complete().
		Complete()

	root, err := b.Build()
	require.NoError(t, err)
	require.Len(t, root.Children(), 1)

	warnings := b.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, 0, warnings[0].Index)
	assert.Equal(t, "comp", warnings[0].Type)
	assert.Contains(t, buf.String(), "level=WARN")

	_, err = b.Build()
	require.NoError(t, err)
	assert.Len(t, b.Warnings(), 1, "warnings are not duplicated across builds")
}

func TestTreeBuilder_CompositeChildOrder(t *testing.T) {
	b := builder.New(newTestRegistry(&recorder{})).AddComposite("comp")
	for _, n := range []string{"a", "b", "c", "d"} {
		b.AddLeaf("leaf", n).Complete()
	}
	root, err := b.Complete().Build()
	require.NoError(t, err)

	var got []int
	for _, c := range root.Children() {
		got = append(got, c.Index())
	}
	assert.Equal(t, []int{1, 2, 3, 4}, got)
}

func TestTreeBuilder_BuildCreatesFreshTrees(t *testing.T) {
	rec := &recorder{}
	b := builder.New(newTestRegistry(rec)).AddLeaf("leaf", "x").Complete()

	first, err := b.Build()
	require.NoError(t, err)
	second, err := b.Build()
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, []string{"leaf:x", "leaf:x"}, rec.built)
}

func TestTreeBuilder_FactoryError(t *testing.T) {
	b := builder.New(newTestRegistry(&recorder{})).AddLeaf("broken").Complete()
	require.NoError(t, b.Err())

	_, err := b.Build()
	assert.ErrorIs(t, err, domain.ErrInvalidArgs)
	assert.Contains(t, err.Error(), "factory exploded")
}

func TestTreeBuilder_InCodeBehaviors(t *testing.T) {
	ticks := 0
	leaf := behavior.LeafFunc(func(*behavior.TickContext) domain.Status {
		ticks++
		return domain.StatusSuccess
	})

	tr, err := builder.New(nil).
		AddDecoratorBehavior("pass", passDecoratorValue()).
		AddLeafBehavior("count", leaf).Complete().
		Complete().
		BuildRoot(memory.NewBlackboard())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSuccess, tr.Tick())
	assert.Equal(t, 1, ticks)
	assert.Equal(t, "pass", tr.Root().Type())

	_, err = builder.New(nil).AddLeaf("leaf").Build()
	assert.ErrorIs(t, err, domain.ErrUnknownNodeType, "registered adds need a registry")

	err = builder.New(nil).Add(nil).Err()
	assert.Error(t, err)
}

func passDecoratorValue() behavior.DecoratorBehavior { return passDecorator{} }

func TestTreeBuilder_Restartable(t *testing.T) {
	tr, err := scenario(builder.New(newTestRegistry(&recorder{}))).Complete().
		BuildRoot(memory.NewBlackboard())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.Equal(t, domain.StatusSuccess, tr.Tick())
		assert.Equal(t, domain.StateSucceeded, tr.Root().State())
	}
}

func TestTreeBuilder_Dump(t *testing.T) {
	b := scenario(builder.New(newTestRegistry(&recorder{})))
	want := `comp("A") ...
  leaf("B")
  deco("C")
    leaf("D")
`
	assert.Equal(t, want, b.Dump())

	b.Complete()
	assert.NotContains(t, b.Dump(), "...")
	assert.Empty(t, builder.New(nil).Dump())
}

func TestTreeBuilder_ToDescriptor(t *testing.T) {
	b := scenario(builder.New(newTestRegistry(&recorder{}))).Complete().
		AddComposite("comp")

	_, err := b.ToDescriptor("broken")
	assert.True(t, errors.Is(err, domain.ErrSecondRoot))

	b = builder.New(newTestRegistry(&recorder{})).
		AddComposite("comp").
		AddDecorator("deco").Complete().
		AddLeaf("leaf", "x").Complete().
		Complete()
	desc, err := b.ToDescriptor("demo")
	require.NoError(t, err)

	assert.Equal(t, "demo", desc.Name)
	assert.Equal(t, 0, desc.Root)
	require.Len(t, desc.Nodes, 3)
	assert.Equal(t, []int{1, 2}, desc.Nodes[0].Children)
	assert.Equal(t, []int{domain.NoChild}, desc.Nodes[1].Children)
	assert.Nil(t, desc.Nodes[2].Children)
	assert.Equal(t, []any{"x"}, desc.Nodes[2].Args)

	_, err = builder.New(nil).ToDescriptor("empty")
	assert.ErrorIs(t, err, domain.ErrEmptyTree)
}
