package nodes

import (
	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// Inverter swaps Success and Failure. Running and Error pass through.
type Inverter struct{}

func (Inverter) Begin(*behavior.TickContext) {}

func (Inverter) Tick(tc *behavior.TickContext, child *behavior.Behavior) domain.Status {
	switch s := child.Tick(tc); s {
	case domain.StatusSuccess:
		return domain.StatusFailure
	case domain.StatusFailure:
		return domain.StatusSuccess
	default:
		return s
	}
}

// Succeeder turns Failure into Success. Running and Error pass through.
type Succeeder struct{}

func (Succeeder) Begin(*behavior.TickContext) {}

func (Succeeder) Tick(tc *behavior.TickContext, child *behavior.Behavior) domain.Status {
	if s := child.Tick(tc); s != domain.StatusFailure {
		return s
	}
	return domain.StatusSuccess
}

// Failer turns Success into Failure. Running and Error pass through.
type Failer struct{}

func (Failer) Begin(*behavior.TickContext) {}

func (Failer) Tick(tc *behavior.TickContext, child *behavior.Behavior) domain.Status {
	if s := child.Tick(tc); s != domain.StatusSuccess {
		return s
	}
	return domain.StatusFailure
}

// Repeat runs its child Count times, ticking it once per tick, and then
// succeeds. A child run ending in Success or Failure counts as completed;
// Error ends the repeat immediately.
type Repeat struct {
	Count int

	done int
}

func (r *Repeat) Begin(*behavior.TickContext) { r.done = 0 }

func (r *Repeat) Tick(tc *behavior.TickContext, child *behavior.Behavior) domain.Status {
	switch s := child.Tick(tc); s {
	case domain.StatusSuccess, domain.StatusFailure:
		r.done++
		if r.done >= r.Count {
			return domain.StatusSuccess
		}
		return domain.StatusRunning
	default:
		return s
	}
}

// Completed returns the number of child runs finished in the current run.
func (r *Repeat) Completed() int { return r.done }

// Recover maps an Error from its child to Status, which defaults to
// Failure. Every other status passes through.
type Recover struct {
	Status domain.Status
}

func (r *Recover) Begin(*behavior.TickContext) {}

func (r *Recover) Tick(tc *behavior.TickContext, child *behavior.Behavior) domain.Status {
	s := child.Tick(tc)
	if s != domain.StatusError {
		return s
	}
	tc.Log().Debug("recovered child error", "child", child.Type(), "index", child.Index())
	if !r.Status.IsValid() {
		return domain.StatusFailure
	}
	return r.Status
}
