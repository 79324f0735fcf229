package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/zorpastaman/behaviortree/pkg/domain"
)

const namespace = "behaviortree"

// Metrics collects per node type counters and run durations.
type Metrics struct {
	ticks    *prometheus.CounterVec
	runs     *prometheus.CounterVec
	aborts   *prometheus.CounterVec
	duration *prometheus.HistogramVec

	mu      sync.Mutex
	started map[runKey]time.Time
}

type runKey struct {
	tree  string
	node  any
	index int
}

func keyOf(e *domain.NodeEvent) runKey {
	return runKey{tree: e.TreeID, node: e.Node, index: e.Index}
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "node_ticks_total",
				Help:      "Total number of node ticks by returned status.",
			},
			[]string{"type", "status"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "node_runs_total",
				Help:      "Total number of finished node runs by terminal status.",
			},
			[]string{"type", "status"},
		),
		aborts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "node_aborts_total",
				Help:      "Total number of aborted node runs.",
			},
			[]string{"type"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "node_run_duration_seconds",
				Help:      "Tick clock time between the first and the last tick of a run.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"type"},
		),
		started: make(map[runKey]time.Time),
	}

	if reg != nil {
		for _, c := range m.Collectors() {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Hooks returns the lifecycle hooks feeding m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunBegin: m.runBegin,
		OnTick:     m.tick,
		OnRunEnd:   m.runEnd,
		OnAbort:    m.abort,
	}
}

func (m *Metrics) runBegin(e *domain.NodeEvent) {
	m.mu.Lock()
	m.started[keyOf(e)] = e.Timestamp
	m.mu.Unlock()
}

func (m *Metrics) tick(e *domain.NodeEvent) {
	m.ticks.WithLabelValues(e.NodeType, e.Status.String()).Inc()
}

func (m *Metrics) runEnd(e *domain.NodeEvent) {
	m.runs.WithLabelValues(e.NodeType, e.Status.String()).Inc()
	if begin, ok := m.take(e); ok {
		m.duration.WithLabelValues(e.NodeType).Observe(e.Timestamp.Sub(begin).Seconds())
	}
}

func (m *Metrics) abort(e *domain.NodeEvent) {
	m.aborts.WithLabelValues(e.NodeType).Inc()
	m.take(e)
}

func (m *Metrics) take(e *domain.NodeEvent) (time.Time, bool) {
	key := keyOf(e)
	m.mu.Lock()
	defer m.mu.Unlock()
	begin, ok := m.started[key]
	delete(m.started, key)
	return begin, ok
}

// Collectors returns the underlying collectors, for registries managed by
// the caller.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.ticks, m.runs, m.aborts, m.duration}
}
