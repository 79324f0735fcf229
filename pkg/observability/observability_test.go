package observability_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zorpastaman/behaviortree/pkg/adapters/memory"
	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/observability"
)

func scripted(statuses ...domain.Status) behavior.LeafBehavior {
	i := 0
	return behavior.LeafFunc(func(*behavior.TickContext) domain.Status {
		s := statuses[i%len(statuses)]
		i++
		return s
	})
}

func newTree(t *testing.T, leaf behavior.LeafBehavior, hooks domain.LifecycleHooks) *behavior.TreeRoot {
	t.Helper()
	node, err := behavior.NewLeaf(leaf, behavior.WithType("patrol"), behavior.WithIndex(0))
	require.NoError(t, err)

	now := time.Unix(0, 0)
	tr, err := behavior.NewTreeRoot(node, memory.NewBlackboard(),
		behavior.WithID("t"),
		behavior.WithHooks(hooks),
		behavior.WithClock(func() time.Time {
			now = now.Add(100 * time.Millisecond)
			return now
		}),
	)
	require.NoError(t, err)
	return tr
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	tr := newTree(t, scripted(domain.StatusRunning, domain.StatusRunning, domain.StatusSuccess), m.Hooks())
	for i := 0; i < 3; i++ {
		tr.Tick()
	}

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "behaviortree_node_ticks_total")
	assert.Contains(t, names, "behaviortree_node_run_duration_seconds")

	assert.Equal(t, 1, testutil.CollectAndCount(reg, "behaviortree_node_runs_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "behaviortree_node_run_duration_seconds"))

	expected := `
# HELP behaviortree_node_ticks_total Total number of node ticks by returned status.
# TYPE behaviortree_node_ticks_total counter
behaviortree_node_ticks_total{status="running",type="patrol"} 2
behaviortree_node_ticks_total{status="success",type="patrol"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, bytes.NewBufferString(expected), "behaviortree_node_ticks_total"))
}

func TestMetrics_Abort(t *testing.T) {
	m, err := observability.NewMetrics(nil)
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.Collectors()...)

	tr := newTree(t, scripted(domain.StatusRunning), m.Hooks())
	tr.Tick()
	tr.Abort()
	tr.Tick()

	assert.Equal(t, 1, testutil.CollectAndCount(reg, "behaviortree_node_aborts_total"))
	assert.Equal(t, 0, testutil.CollectAndCount(reg, "behaviortree_node_runs_total"))
	assert.Equal(t, 0, testutil.CollectAndCount(reg, "behaviortree_node_run_duration_seconds"),
		"aborted runs record no duration")
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	tr := newTree(t, scripted(domain.StatusSuccess, domain.StatusError), observability.LogHooks(logger))
	tr.Tick()
	assert.Empty(t, buf.String(), "successful runs log at debug")

	tr.Tick()
	assert.Contains(t, buf.String(), "Run Errored")
	assert.Contains(t, buf.String(), "type=patrol")
	assert.Contains(t, buf.String(), "status=error")
}

func TestCombine(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{OnTick: func(*domain.NodeEvent) { order = append(order, "a") }}
	b := domain.LifecycleHooks{
		OnTick:   func(*domain.NodeEvent) { order = append(order, "b") },
		OnRunEnd: func(*domain.NodeEvent) { order = append(order, "b-end") },
	}

	h := observability.Combine(a, domain.LifecycleHooks{}, b)
	assert.Nil(t, h.OnRunBegin)
	assert.Nil(t, h.OnAbort)

	e := &domain.NodeEvent{}
	h.OnTick(e)
	h.OnRunEnd(e)
	assert.Equal(t, []string{"a", "b", "b-end"}, order)

	assert.True(t, observability.Combine().IsZero())
}

// tickAll ticks every child and returns the status of the last one.
type tickAll struct{}

func (tickAll) Begin(*behavior.TickContext) {}

func (tickAll) Tick(tc *behavior.TickContext, children []*behavior.Behavior) domain.Status {
	var status domain.Status
	for _, c := range children {
		status = c.Tick(tc)
	}
	return status
}

func histogram(t *testing.T, reg *prometheus.Registry, nodeType string) (uint64, float64) {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "behaviortree_node_run_duration_seconds" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "type" && l.GetValue() == nodeType {
					return metric.GetHistogram().GetSampleCount(), metric.GetHistogram().GetSampleSum()
				}
			}
		}
	}
	return 0, 0
}

func TestMetrics_DurationsOfUnindexedNodes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	short, err := behavior.NewLeaf(scripted(domain.StatusRunning, domain.StatusSuccess), behavior.WithType("short"))
	require.NoError(t, err)
	long, err := behavior.NewLeaf(scripted(domain.StatusRunning, domain.StatusRunning, domain.StatusRunning, domain.StatusSuccess), behavior.WithType("long"))
	require.NoError(t, err)
	all, err := behavior.NewComposite(tickAll{}, []*behavior.Behavior{short, long}, behavior.WithType("all"))
	require.NoError(t, err)
	require.Equal(t, -1, long.Index())

	now := time.Unix(0, 0)
	tr, err := behavior.NewTreeRoot(all, memory.NewBlackboard(),
		behavior.WithHooks(m.Hooks()),
		behavior.WithClock(func() time.Time {
			now = now.Add(100 * time.Millisecond)
			return now
		}),
	)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		tr.Tick()
	}

	count, sum := histogram(t, reg, "short")
	assert.Equal(t, uint64(2), count)
	assert.InDelta(t, 0.2, sum, 1e-9)

	count, sum = histogram(t, reg, "long")
	assert.Equal(t, uint64(1), count, "overlapping runs keep their own start time")
	assert.InDelta(t, 0.3, sum, 1e-9)

	count, sum = histogram(t, reg, "all")
	assert.Equal(t, uint64(1), count)
	assert.InDelta(t, 0.3, sum, 1e-9)
}
