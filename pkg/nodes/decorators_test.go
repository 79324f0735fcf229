package nodes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/nodes"
)

func TestStatusMappingDecorators(t *testing.T) {
	tests := []struct {
		decorator string
		args      []any
		want      map[domain.Status]domain.Status
	}{
		{nodes.TypeInverter, nil, map[domain.Status]domain.Status{S: F, F: S, R: R, E: E}},
		{nodes.TypeSucceeder, nil, map[domain.Status]domain.Status{S: S, F: S, R: R, E: E}},
		{nodes.TypeFailer, nil, map[domain.Status]domain.Status{S: F, F: F, R: R, E: E}},
		{nodes.TypeRecover, nil, map[domain.Status]domain.Status{S: S, F: F, R: R, E: F}},
		{nodes.TypeRecover, []any{"success"}, map[domain.Status]domain.Status{S: S, F: F, R: R, E: S}},
	}

	for _, tt := range tests {
		for in, want := range tt.want {
			t.Run(tt.decorator+"/"+in.String(), func(t *testing.T) {
				tr := root(t, newBuilder().
					AddDecorator(tt.decorator, tt.args...).
					AddLeaf(nodes.TypeConstant, in).Complete().
					Complete(), nil)
				assert.Equal(t, want, tr.Tick())
			})
		}
	}
}

func TestRepeat(t *testing.T) {
	child := newScript(S)
	tr := root(t, newBuilder().
		AddDecorator(nodes.TypeRepeat, 3).
		AddLeafBehavior("child", child).Complete().
		Complete(), nil)

	assert.Equal(t, []domain.Status{R, R, S}, ticks(tr, 3))
	assert.Equal(t, 3, child.begins, "every repetition is a new child run")
	assert.Equal(t, 3, child.ticks, "the child is ticked once per tick")

	assert.Equal(t, []domain.Status{R, R, S}, ticks(tr, 3), "the count restarts with the run")
}

func TestRepeat_CountsFailuresAndWaitsForRunning(t *testing.T) {
	child := newScript(R, F)
	tr := root(t, newBuilder().
		AddDecorator(nodes.TypeRepeat, 2).
		AddLeafBehavior("child", child).Complete().
		Complete(), nil)

	assert.Equal(t, []domain.Status{R, R, R, S}, ticks(tr, 4))
	assert.Equal(t, 2, child.begins)
}

func TestRepeat_Error(t *testing.T) {
	tr := root(t, newBuilder().
		AddDecorator(nodes.TypeRepeat, 5).
		AddLeaf(nodes.TypeConstant, "error").Complete().
		Complete(), nil)

	assert.Equal(t, E, tr.Tick())

	_, err := newBuilder().AddDecorator(nodes.TypeRepeat, 0).
		AddLeaf(nodes.TypeConstant, "success").Complete().
		Complete().Build()
	assert.ErrorIs(t, err, domain.ErrInvalidArgs)
}

func TestRecover_InvalidStatus(t *testing.T) {
	err := newBuilder().AddDecorator(nodes.TypeRecover, 3).Err()
	assert.ErrorIs(t, err, domain.ErrInvalidArgs)
}
