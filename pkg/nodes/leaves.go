package nodes

import (
	"time"

	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/ports"
)

// Constant returns the same status on every tick.
type Constant struct {
	Status domain.Status
}

func (c *Constant) Begin(*behavior.TickContext) {}

func (c *Constant) Tick(*behavior.TickContext) domain.Status { return c.Status }

// WaitFrames is Running until Frames ticks have passed since the tick that
// began the run, then succeeds.
type WaitFrames struct {
	Frames uint64

	start uint64
}

func (w *WaitFrames) Begin(tc *behavior.TickContext) { w.start = tc.Frame }

func (w *WaitFrames) Tick(tc *behavior.TickContext) domain.Status {
	if tc.Frame-w.start >= w.Frames {
		return domain.StatusSuccess
	}
	return domain.StatusRunning
}

// WaitTime is Running until Duration has elapsed on the tree clock since
// the run began, then succeeds.
type WaitTime struct {
	Duration time.Duration

	start time.Time
}

func (w *WaitTime) Begin(tc *behavior.TickContext) { w.start = tc.Now }

func (w *WaitTime) Tick(tc *behavior.TickContext) domain.Status {
	if tc.Now.Sub(w.start) >= w.Duration {
		return domain.StatusSuccess
	}
	return domain.StatusRunning
}

// HasValue succeeds when Property is on the blackboard and fails otherwise.
type HasValue struct {
	Property ports.PropertyName
}

func (h *HasValue) Begin(*behavior.TickContext) {}

func (h *HasValue) Tick(tc *behavior.TickContext) domain.Status {
	if tc.Blackboard.Contains(h.Property) {
		return domain.StatusSuccess
	}
	return domain.StatusFailure
}

// SetValue writes Value under Property and succeeds.
type SetValue struct {
	Property ports.PropertyName
	Value    any
}

func (s *SetValue) Begin(*behavior.TickContext) {}

func (s *SetValue) Tick(tc *behavior.TickContext) domain.Status {
	tc.Blackboard.Set(s.Property, s.Value)
	return domain.StatusSuccess
}

// InRange succeeds when Property holds a number within [Min, Max] and fails
// when it holds one outside. A missing or non-numeric value is an Error.
type InRange struct {
	Property ports.PropertyName
	Min, Max float64
}

func (r *InRange) Begin(*behavior.TickContext) {}

func (r *InRange) Tick(tc *behavior.TickContext) domain.Status {
	v, ok := tc.Blackboard.Get(r.Property)
	if !ok {
		tc.Log().Debug("in_range property missing", "property", r.Property.Name())
		return domain.StatusError
	}
	f, ok := toFloat(v)
	if !ok {
		tc.Log().Warn("in_range property is not a number", "property", r.Property.Name(), "value", v)
		return domain.StatusError
	}
	if f < r.Min || f > r.Max {
		return domain.StatusFailure
	}
	return domain.StatusSuccess
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
