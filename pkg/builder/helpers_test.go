package builder_test

import (
	"fmt"

	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/registry"
	"github.com/zorpastaman/behaviortree/pkg/schema"
)

// recorder collects the order in which factories run.
type recorder struct {
	built []string
}

type namedLeaf struct{ name string }

func (namedLeaf) Begin(*behavior.TickContext) {}

func (namedLeaf) Tick(*behavior.TickContext) domain.Status { return domain.StatusSuccess }

type passDecorator struct{}

func (passDecorator) Begin(*behavior.TickContext) {}

func (passDecorator) Tick(tc *behavior.TickContext, child *behavior.Behavior) domain.Status {
	return child.Tick(tc)
}

type allComposite struct{}

func (allComposite) Begin(*behavior.TickContext) {}

func (allComposite) Tick(tc *behavior.TickContext, children []*behavior.Behavior) domain.Status {
	for _, c := range children {
		if s := c.Tick(tc); s != domain.StatusSuccess {
			return s
		}
	}
	return domain.StatusSuccess
}

// newTestRegistry registers "leaf", "deco" and "comp" types whose
// factories log to rec as "type:name".
func newTestRegistry(rec *recorder) *registry.Registry {
	reg := registry.NewRegistry()
	nameParam := schema.Params{{Name: "name", Type: schema.String(), Optional: true}}

	name := func(args registry.Args) string {
		var s string
		_ = args.DecodeOr(0, &s)
		return s
	}

	reg.RegisterLeaf("leaf", nameParam, func(args registry.Args) (behavior.LeafBehavior, error) {
		rec.built = append(rec.built, "leaf:"+name(args))
		return namedLeaf{name: name(args)}, nil
	})
	reg.RegisterDecorator("deco", nameParam, func(args registry.Args) (behavior.DecoratorBehavior, error) {
		rec.built = append(rec.built, "deco:"+name(args))
		return passDecorator{}, nil
	})
	reg.RegisterComposite("comp", nameParam, func(args registry.Args) (behavior.CompositeBehavior, error) {
		rec.built = append(rec.built, "comp:"+name(args))
		return allComposite{}, nil
	})
	reg.RegisterLeaf("broken", nil, func(registry.Args) (behavior.LeafBehavior, error) {
		return nil, fmt.Errorf("factory exploded")
	})
	return reg
}

// names returns "type@index" for every node in pre-order.
func names(root *behavior.Behavior) []string {
	var out []string
	root.Walk(func(n *behavior.Behavior, _ int) bool {
		out = append(out, fmt.Sprintf("%s@%d", n.Type(), n.Index()))
		return true
	})
	return out
}
