package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// RunBlackboardContract runs a suite of tests to verify that a Blackboard
// implementation adheres to the defined interface contract.
// newBlackboard must return an empty blackboard on every call.
func RunBlackboardContract(t *testing.T, newBlackboard func() Blackboard) {
	health := NewPropertyName("health")
	target := NewPropertyName("target")

	t.Run("Missing Key", func(t *testing.T) {
		bb := newBlackboard()
		v, ok := bb.Get(health)
		assert.False(t, ok)
		assert.Nil(t, v)
		assert.False(t, bb.Contains(health))
		assert.False(t, bb.Remove(health))
	})

	t.Run("Set and Get", func(t *testing.T) {
		bb := newBlackboard()
		bb.Set(health, 42)
		v, ok := bb.Get(health)
		require.True(t, ok)
		assert.Equal(t, 42, v)
		assert.True(t, bb.Contains(health))

		bb.Set(health, 7)
		v, _ = bb.Get(health)
		assert.Equal(t, 7, v, "Set should replace the previous value")
	})

	t.Run("Typed By Value", func(t *testing.T) {
		type vec struct{ X, Y float64 }
		bb := newBlackboard()
		SetValue(bb, target, vec{X: 1, Y: 2})

		got, ok := GetValue[vec](bb, target)
		require.True(t, ok)
		got.X = 100

		again, _ := GetValue[vec](bb, target)
		assert.Equal(t, 1.0, again.X, "by-value reads must not alias the stored value")

		_, ok = GetValue[string](bb, target)
		assert.False(t, ok, "type mismatch should report false")
	})

	t.Run("Typed By Reference", func(t *testing.T) {
		type agent struct{ Name string }
		bb := newBlackboard()
		SetRef(bb, target, &agent{Name: "guard"})

		ref, ok := GetRef[agent](bb, target)
		require.True(t, ok)
		ref.Name = "captain"

		again, _ := GetRef[agent](bb, target)
		assert.Equal(t, "captain", again.Name, "by-reference reads must share the stored value")
	})

	t.Run("Remove and Properties", func(t *testing.T) {
		bb := newBlackboard()
		bb.Set(health, 1)
		bb.Set(target, "enemy")
		assert.ElementsMatch(t, []PropertyName{health, target}, bb.Properties())

		assert.True(t, bb.Remove(health))
		_, ok := bb.Get(health)
		assert.False(t, ok)
		assert.ElementsMatch(t, []PropertyName{target}, bb.Properties())
	})
}

// RunDescriptorStoreContract runs a suite of tests to verify that a
// DescriptorStore implementation adheres to the defined interface contract.
func RunDescriptorStoreContract(t *testing.T, store DescriptorStore) {
	ctx := context.Background()
	name := "contract-tree-" + time.Now().Format("20060102150405")

	desc := &domain.TreeDescriptor{
		Name: name,
		Root: 0,
		Nodes: []domain.NodeRecord{
			{Type: "sequence", Children: []int{1, 2}},
			{Type: "constant", Args: []any{"success"}},
			{Type: "wait_frames", Args: []any{3}},
		},
	}

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, desc), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, desc.Root, loaded.Root)
		require.Len(t, loaded.Nodes, 3)
		assert.Equal(t, "sequence", loaded.Nodes[0].Type)
		assert.Equal(t, []int{1, 2}, loaded.Nodes[0].Children)
		assert.Equal(t, "success", loaded.Nodes[1].Args[0])
		// Numeric args may come back as float64 after JSON persistence.
		assert.NotNil(t, loaded.Nodes[2].Args[0])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrTreeNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, desc))
		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrTreeNotFound, "Load after Delete should return ErrTreeNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, store.Save(ctx, id1, desc))
		require.NoError(t, store.Save(ctx, id2, desc))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})
}
