package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zorpastaman/behaviortree/pkg/adapters/memory"
	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/nodes"

	httpAdapter "github.com/zorpastaman/behaviortree/pkg/adapters/http"
)

func TestParseAssignments(t *testing.T) {
	got, err := ParseAssignments([]string{"ammo=3", "name=bob", "armed=true", "ratio=0.5", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"ammo":  3,
		"name":  "bob",
		"armed": true,
		"ratio": 0.5,
		"empty": nil,
	}, got)

	_, err = ParseAssignments([]string{"novalue"})
	assert.Error(t, err)
	_, err = ParseAssignments([]string{"=3"})
	assert.Error(t, err)
}

func TestBlackboardValues(t *testing.T) {
	assert.Nil(t, BlackboardValues(memory.NewBlackboard()))

	bb := memory.NewBlackboardFrom(map[string]any{"a": 1, "b": "x"})
	assert.Equal(t, map[string]any{"a": 1, "b": "x"}, BlackboardValues(bb))
}

func waitTree(t *testing.T, frames int) *behavior.TreeRoot {
	t.Helper()
	rt, err := CreateRuntime(RuntimeOptions{})
	require.NoError(t, err)
	tree, err := rt.NewTree(
		rt.NewBuilder().
			AddComposite(nodes.TypeSequence).
			AddLeaf(nodes.TypeSetValue, "seen", true).Complete().
			AddLeaf(nodes.TypeWaitFrames, frames).Complete().
			Complete(),
		nil,
	)
	require.NoError(t, err)
	return tree
}

func TestLoop_StopsWhenFinished(t *testing.T) {
	var frames []Frame
	loop := NewLoop(waitTree(t, 2), LoopOptions{OnFrame: func(f Frame) { frames = append(frames, f) }})

	status, err := loop.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, status)
	require.Len(t, frames, 3)
	assert.Equal(t, domain.StatusRunning, frames[0].Status)
	assert.Equal(t, uint64(3), frames[2].Number)
	assert.Len(t, frames[2].Nodes, 3)
}

func TestLoop_RepeatUntilFrameLimit(t *testing.T) {
	loop := NewLoop(waitTree(t, 1), LoopOptions{Repeat: true, MaxFrames: 7})

	_, err := loop.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(7), loop.State().Frame)
}

func TestLoop_Cancel(t *testing.T) {
	loop := NewLoop(waitTree(t, 1000), LoopOptions{Interval: time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	status, err := loop.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, domain.StatusRunning, status)
}

func TestLoop_State(t *testing.T) {
	streams := httpAdapter.NewStreamManager(nil)
	ch, unsubscribe := streams.Subscribe()
	defer unsubscribe()

	loop := NewLoop(waitTree(t, 5), LoopOptions{Streams: streams})
	assert.Equal(t, uint64(0), loop.State().Frame)

	loop.Step()
	state := loop.State()
	assert.Equal(t, uint64(1), state.Frame)
	assert.Equal(t, domain.StatusRunning, state.Status)
	assert.Equal(t, map[string]any{"seen": true}, state.Blackboard)
	assert.NotEmpty(t, state.TreeID)

	select {
	case msg := <-ch:
		assert.Contains(t, msg, `"frame":1`)
	default:
		t.Fatal("frame was not published")
	}

	var _ httpAdapter.Tree = loop
}

func TestCreateRuntime_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rt, err := CreateRuntime(RuntimeOptions{Metrics: reg})
	require.NoError(t, err)

	tree, err := rt.NewTree(rt.NewBuilder().AddLeaf(nodes.TypeConstant, "success").Complete(), nil)
	require.NoError(t, err)
	tree.Tick()

	assert.Equal(t, 1, testutil.CollectAndCount(reg, "behaviortree_node_runs_total"))

	_, err = CreateRuntime(RuntimeOptions{Metrics: reg})
	assert.Error(t, err, "collectors cannot be registered twice")
}

func TestLoadBuilder(t *testing.T) {
	rt, err := CreateRuntime(RuntimeOptions{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tree:\n  type: constant\n  args: [success]\n"), 0644))

	b, err := LoadBuilder(rt, path)
	require.NoError(t, err)
	assert.Equal(t, "constant(\"success\")\n", b.Dump())

	_, err = LoadBuilder(rt, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "nope.yaml")
}
