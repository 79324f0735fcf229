package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zorpastaman/behaviortree/pkg/ports"
)

func TestBlackboard_CollidingIDs(t *testing.T) {
	bb := &Blackboard{id: func(ports.PropertyName) uint64 { return 42 }}
	ammo, target, health := ports.NewPropertyName("ammo"), ports.NewPropertyName("target"), ports.NewPropertyName("health")

	bb.Set(ammo, 3)
	bb.Set(target, "orc")
	assert.False(t, bb.Contains(health))

	v, ok := bb.Get(ammo)
	require.True(t, ok)
	assert.Equal(t, 3, v, "a colliding Set must not overwrite another property")

	bb.Set(ammo, 4)
	assert.Equal(t, map[string]any{"ammo": 4, "target": "orc"}, bb.Values())
	assert.Len(t, bb.Properties(), 2)

	assert.True(t, bb.Remove(ammo))
	assert.False(t, bb.Remove(ammo))
	v, ok = bb.Get(target)
	require.True(t, ok)
	assert.Equal(t, "orc", v)
	assert.Len(t, bb.Properties(), 1)

	assert.True(t, bb.Remove(target))
	assert.Empty(t, bb.values, "empty buckets are dropped")
}

func TestBlackboard_CollisionContract(t *testing.T) {
	ports.RunBlackboardContract(t, func() ports.Blackboard {
		return &Blackboard{id: func(p ports.PropertyName) uint64 { return p.ID() % 2 }}
	})
}
