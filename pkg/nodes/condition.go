package nodes

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"
	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/ports"
)

// Condition evaluates a boolean expression over blackboard values.
// Identifiers in the expression name blackboard properties:
//
//	ammo > 0 && target != nil
//
// It succeeds when the expression is true and fails when it is false.
// A referenced property that is missing, or an evaluation failure, yields
// domain.StatusError.
type Condition struct {
	expression string
	program    *vm.Program
	properties []ports.PropertyName
}

// NewCondition compiles expression.
func NewCondition(expression string) (*Condition, error) {
	program, err := expr.Compile(expression, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile condition %q: %w", expression, err)
	}

	names := collectIdentifiers(program.Node())
	props := make([]ports.PropertyName, len(names))
	for i, name := range names {
		props[i] = ports.NewPropertyName(name)
	}

	return &Condition{
		expression: expression,
		program:    program,
		properties: props,
	}, nil
}

// Expression returns the source expression.
func (c *Condition) Expression() string { return c.expression }

// Properties returns the blackboard properties the expression reads.
func (c *Condition) Properties() []ports.PropertyName {
	return append([]ports.PropertyName(nil), c.properties...)
}

func (c *Condition) Begin(*behavior.TickContext) {}

func (c *Condition) Tick(tc *behavior.TickContext) domain.Status {
	env := make(map[string]any, len(c.properties))
	for _, p := range c.properties {
		v, ok := tc.Blackboard.Get(p)
		if !ok {
			tc.Log().Debug("condition property missing", "expression", c.expression, "property", p.Name())
			return domain.StatusError
		}
		env[p.Name()] = v
	}

	out, err := expr.Run(c.program, env)
	if err != nil {
		tc.Log().Warn("condition evaluation failed", "expression", c.expression, "error", err)
		return domain.StatusError
	}
	if ok, _ := out.(bool); ok {
		return domain.StatusSuccess
	}
	return domain.StatusFailure
}

// identifierCollector gathers free identifiers. Names bound by let are
// local to the expression and excluded.
type identifierCollector struct {
	seen     map[string]bool
	declared map[string]bool
	names    []string
}

func (v *identifierCollector) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		if !v.seen[n.Value] {
			v.seen[n.Value] = true
			v.names = append(v.names, n.Value)
		}
	case *ast.VariableDeclaratorNode:
		v.declared[n.Name] = true
	}
}

func collectIdentifiers(root ast.Node) []string {
	v := &identifierCollector{seen: map[string]bool{}, declared: map[string]bool{}}
	ast.Walk(&root, v)

	out := v.names[:0]
	for _, name := range v.names {
		if !v.declared[name] {
			out = append(out, name)
		}
	}
	return out
}
