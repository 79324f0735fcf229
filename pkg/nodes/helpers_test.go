package nodes_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zorpastaman/behaviortree/pkg/adapters/memory"
	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/builder"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/nodes"
)

// script is a leaf returning a fixed sequence of statuses, repeating the
// last one, and counting its callbacks.
type script struct {
	statuses []domain.Status
	pos      int
	begins   int
	ticks    int
	aborts   int
}

func newScript(statuses ...domain.Status) *script {
	return &script{statuses: statuses}
}

func (s *script) Begin(*behavior.TickContext) {
	s.begins++
	s.pos = 0
}

func (s *script) Tick(*behavior.TickContext) domain.Status {
	s.ticks++
	st := s.statuses[min(s.pos, len(s.statuses)-1)]
	s.pos++
	return st
}

func (s *script) Abort(*behavior.TickContext) { s.aborts++ }

// testClock advances by step on every call.
func testClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func newBuilder() *builder.TreeBuilder {
	return builder.New(nodes.NewRegistry())
}

func root(t *testing.T, b *builder.TreeBuilder, bb *memory.Blackboard, opts ...behavior.RootOption) *behavior.TreeRoot {
	t.Helper()
	if bb == nil {
		bb = memory.NewBlackboard()
	}
	tr, err := b.BuildRoot(bb, opts...)
	require.NoError(t, err)
	return tr
}

// ticks ticks tr n times and returns the statuses.
func ticks(tr *behavior.TreeRoot, n int) []domain.Status {
	out := make([]domain.Status, n)
	for i := range out {
		out[i] = tr.Tick()
	}
	return out
}

const (
	S = domain.StatusSuccess
	F = domain.StatusFailure
	R = domain.StatusRunning
	E = domain.StatusError
)
