package nodes

import (
	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// Sequence ticks its children in order and succeeds when all of them
// succeed. It stops at the first child that fails or errors and returns
// that status. A Running child is resumed on the next tick without
// re-ticking the children before it.
type Sequence struct {
	current int
}

func (s *Sequence) Begin(*behavior.TickContext) { s.current = 0 }

func (s *Sequence) Tick(tc *behavior.TickContext, children []*behavior.Behavior) domain.Status {
	return sweep(tc, children, &s.current, domain.StatusSuccess)
}

// Selector ticks its children in order and succeeds at the first child
// that succeeds. It fails when every child fails. An Error from any child
// ends the selector with Error. Running children are resumed like in
// Sequence.
type Selector struct {
	current int
}

func (s *Selector) Begin(*behavior.TickContext) { s.current = 0 }

func (s *Selector) Tick(tc *behavior.TickContext, children []*behavior.Behavior) domain.Status {
	return sweep(tc, children, &s.current, domain.StatusFailure)
}

// sweep advances *current past children returning cont and returns the
// first other status. When every child returned cont, so does sweep.
func sweep(tc *behavior.TickContext, children []*behavior.Behavior, current *int, cont domain.Status) domain.Status {
	for *current < len(children) {
		child := children[*current]
		s := child.Tick(tc)
		if s != cont {
			if s == domain.StatusError {
				abortFrom(tc, children, *current+1)
			}
			return s
		}
		*current++
	}
	return cont
}

// Parallel ticks every unfinished child on each tick, in order. It succeeds
// once SuccessThreshold children succeeded and fails once FailureThreshold
// children failed; failure is checked first. A zero SuccessThreshold means
// all children and a zero FailureThreshold means one. Thresholds above the
// number of children are clamped. When the outcome is decided, children
// still Running are aborted.
// An Error from any child aborts the others and is returned.
type Parallel struct {
	SuccessThreshold int
	FailureThreshold int

	finished  []bool
	successes int
	failures  int
}

func (p *Parallel) Begin(*behavior.TickContext) {
	p.finished = nil
	p.successes = 0
	p.failures = 0
}

func (p *Parallel) Tick(tc *behavior.TickContext, children []*behavior.Behavior) domain.Status {
	if p.finished == nil {
		p.finished = make([]bool, len(children))
	}

	for i, child := range children {
		if p.finished[i] {
			continue
		}
		switch child.Tick(tc) {
		case domain.StatusSuccess:
			p.finished[i] = true
			p.successes++
		case domain.StatusFailure:
			p.finished[i] = true
			p.failures++
		case domain.StatusError:
			p.finished[i] = true
			abortFrom(tc, children, 0)
			return domain.StatusError
		}
	}

	n := len(children)
	switch {
	case p.failures >= threshold(p.FailureThreshold, 1, n):
		abortFrom(tc, children, 0)
		return domain.StatusFailure
	case p.successes >= threshold(p.SuccessThreshold, n, n):
		abortFrom(tc, children, 0)
		return domain.StatusSuccess
	case p.successes+p.failures == n:
		// Every child finished without reaching a threshold.
		return domain.StatusFailure
	default:
		return domain.StatusRunning
	}
}

func (p *Parallel) Abort(*behavior.TickContext) { p.finished = nil }

func threshold(v, def, n int) int {
	if v <= 0 {
		v = def
	}
	if v > n {
		return n
	}
	return v
}

// abortFrom aborts the Started children from index i on.
func abortFrom(tc *behavior.TickContext, children []*behavior.Behavior, i int) {
	for _, child := range children[i:] {
		child.Abort(tc)
	}
}
