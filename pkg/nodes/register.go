package nodes

import (
	"fmt"
	"math"
	"time"

	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/ports"
	"github.com/zorpastaman/behaviortree/pkg/registry"
	"github.com/zorpastaman/behaviortree/pkg/schema"
)

// Type identifiers of the built-in nodes.
const (
	TypeConstant   = "constant"
	TypeWaitFrames = "wait_frames"
	TypeWaitTime   = "wait_time"
	TypeHasValue   = "has_value"
	TypeSetValue   = "set_value"
	TypeCondition  = "condition"
	TypeInRange    = "in_range"

	TypeInverter  = "inverter"
	TypeSucceeder = "succeeder"
	TypeFailer    = "failer"
	TypeRepeat    = "repeat"
	TypeRecover   = "recover"

	TypeSequence = "sequence"
	TypeSelector = "selector"
	TypeParallel = "parallel"
)

// RegisterDefaults registers every built-in node type in reg.
func RegisterDefaults(reg *registry.Registry) {
	reg.RegisterLeaf(TypeConstant,
		schema.Params{{Name: "status", Type: schema.Status()}},
		func(args registry.Args) (behavior.LeafBehavior, error) {
			s, err := decodeStatus(args, 0, domain.StatusInvalid)
			if err != nil {
				return nil, err
			}
			return &Constant{Status: s}, nil
		},
		registry.WithDescription("Returns the configured status on every tick."))

	reg.RegisterLeaf(TypeWaitFrames,
		schema.Params{{Name: "frames", Type: schema.Int()}},
		func(args registry.Args) (behavior.LeafBehavior, error) {
			var n int
			if err := args.Decode(0, &n); err != nil {
				return nil, err
			}
			if n < 1 {
				return nil, fmt.Errorf("frames must be at least 1, got %d", n)
			}
			return &WaitFrames{Frames: uint64(n)}, nil
		},
		registry.WithDescription("Running for the given number of ticks, then Success."))

	reg.RegisterLeaf(TypeWaitTime,
		schema.Params{{Name: "duration", Type: schema.Duration()}},
		func(args registry.Args) (behavior.LeafBehavior, error) {
			var d time.Duration
			if err := args.Decode(0, &d); err != nil {
				return nil, err
			}
			if d < 0 {
				return nil, fmt.Errorf("duration must not be negative, got %s", d)
			}
			return &WaitTime{Duration: d}, nil
		},
		registry.WithDescription("Running until the duration has elapsed, then Success."))

	reg.RegisterLeaf(TypeHasValue,
		schema.Params{{Name: "property", Type: schema.Property()}},
		func(args registry.Args) (behavior.LeafBehavior, error) {
			p, err := decodeProperty(args, 0)
			if err != nil {
				return nil, err
			}
			return &HasValue{Property: p}, nil
		},
		registry.WithDescription("Success if the blackboard holds the property, else Failure."))

	reg.RegisterLeaf(TypeSetValue,
		schema.Params{{Name: "property", Type: schema.Property()}, {Name: "value", Type: schema.Any()}},
		func(args registry.Args) (behavior.LeafBehavior, error) {
			p, err := decodeProperty(args, 0)
			if err != nil {
				return nil, err
			}
			return &SetValue{Property: p, Value: args[1]}, nil
		},
		registry.WithDescription("Writes the value under the property, then Success."))

	reg.RegisterLeaf(TypeCondition,
		schema.Params{{Name: "expression", Type: schema.String()}},
		func(args registry.Args) (behavior.LeafBehavior, error) {
			var src string
			if err := args.Decode(0, &src); err != nil {
				return nil, err
			}
			return NewCondition(src)
		},
		registry.WithDescription("Evaluates a boolean expression over blackboard values."))

	reg.RegisterLeaf(TypeInRange,
		schema.Params{
			{Name: "property", Type: schema.Property()},
			{Name: "min", Type: schema.Float()},
			{Name: "max", Type: schema.Float(), Optional: true},
		},
		func(args registry.Args) (behavior.LeafBehavior, error) {
			p, err := decodeProperty(args, 0)
			if err != nil {
				return nil, err
			}
			r := &InRange{Property: p, Max: math.Inf(1)}
			if err := args.Decode(1, &r.Min); err != nil {
				return nil, err
			}
			if err := args.DecodeOr(2, &r.Max); err != nil {
				return nil, err
			}
			if r.Min > r.Max {
				return nil, fmt.Errorf("min %v is greater than max %v", r.Min, r.Max)
			}
			return r, nil
		},
		registry.WithDescription("Success if the numeric property lies within [min, max], else Failure."))

	reg.RegisterDecorator(TypeInverter, nil,
		func(registry.Args) (behavior.DecoratorBehavior, error) { return Inverter{}, nil },
		registry.WithDescription("Swaps Success and Failure."))

	reg.RegisterDecorator(TypeSucceeder, nil,
		func(registry.Args) (behavior.DecoratorBehavior, error) { return Succeeder{}, nil },
		registry.WithDescription("Turns Failure into Success."))

	reg.RegisterDecorator(TypeFailer, nil,
		func(registry.Args) (behavior.DecoratorBehavior, error) { return Failer{}, nil },
		registry.WithDescription("Turns Success into Failure."))

	reg.RegisterDecorator(TypeRepeat,
		schema.Params{{Name: "count", Type: schema.Int()}},
		func(args registry.Args) (behavior.DecoratorBehavior, error) {
			var n int
			if err := args.Decode(0, &n); err != nil {
				return nil, err
			}
			if n < 1 {
				return nil, fmt.Errorf("count must be at least 1, got %d", n)
			}
			return &Repeat{Count: n}, nil
		},
		registry.WithDescription("Runs the child the given number of times, then Success."))

	reg.RegisterDecorator(TypeRecover,
		schema.Params{{Name: "status", Type: schema.Status(), Optional: true}},
		func(args registry.Args) (behavior.DecoratorBehavior, error) {
			s, err := decodeStatus(args, 0, domain.StatusFailure)
			if err != nil {
				return nil, err
			}
			return &Recover{Status: s}, nil
		},
		registry.WithDescription("Maps a child Error to the given status, Failure by default."))

	reg.RegisterComposite(TypeSequence, nil,
		func(registry.Args) (behavior.CompositeBehavior, error) { return &Sequence{}, nil },
		registry.WithDescription("Success when every child succeeds, in order."))

	reg.RegisterComposite(TypeSelector, nil,
		func(registry.Args) (behavior.CompositeBehavior, error) { return &Selector{}, nil },
		registry.WithDescription("Success at the first child that succeeds, in order."))

	reg.RegisterComposite(TypeParallel,
		schema.Params{
			{Name: "success_threshold", Type: schema.Int(), Optional: true},
			{Name: "failure_threshold", Type: schema.Int(), Optional: true},
		},
		func(args registry.Args) (behavior.CompositeBehavior, error) {
			p := &Parallel{}
			if err := args.DecodeOr(0, &p.SuccessThreshold); err != nil {
				return nil, err
			}
			if err := args.DecodeOr(1, &p.FailureThreshold); err != nil {
				return nil, err
			}
			if p.SuccessThreshold < 0 || p.FailureThreshold < 0 {
				return nil, fmt.Errorf("thresholds must not be negative")
			}
			return p, nil
		},
		registry.WithDescription("Ticks every child each tick until a threshold is reached."))
}

// NewRegistry returns a registry holding the built-in types.
func NewRegistry() *registry.Registry {
	reg := registry.NewRegistry()
	RegisterDefaults(reg)
	return reg
}

func decodeStatus(args registry.Args, i int, def domain.Status) (domain.Status, error) {
	if !args.Has(i) {
		if def == domain.StatusInvalid {
			return def, fmt.Errorf("argument %d: missing status", i)
		}
		return def, nil
	}
	if s, ok := args[i].(domain.Status); ok {
		return s, nil
	}
	var name string
	if err := args.Decode(i, &name); err != nil {
		return domain.StatusInvalid, err
	}
	return domain.ParseStatus(name)
}

func decodeProperty(args registry.Args, i int) (ports.PropertyName, error) {
	var name string
	if err := args.Decode(i, &name); err != nil {
		return ports.PropertyName{}, err
	}
	if name == "" {
		return ports.PropertyName{}, fmt.Errorf("argument %d: property name is empty", i)
	}
	return ports.NewPropertyName(name), nil
}
