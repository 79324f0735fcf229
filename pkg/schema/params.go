package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Param describes one positional argument.
type Param struct {
	Name     string
	Type     Type
	Optional bool
}

// String renders the parameter as "name:type", with a trailing "?" when
// it is optional.
func (p Param) String() string {
	s := p.Name + ":" + p.Type.Name()
	if p.Optional {
		s += "?"
	}
	return s
}

// MarshalJSON renders the parameter for type listings.
func (p Param) MarshalJSON() ([]byte, error) {
	if p.Type == nil {
		return nil, fmt.Errorf("parameter %s: type is nil", p.Name)
	}
	return json.Marshal(struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Optional bool   `json:"optional,omitempty"`
	}{p.Name, p.Type.Name(), p.Optional})
}

// Params is the ordered list of positional arguments a node type accepts.
// Optional parameters may only follow required ones.
type Params []Param

// String renders the list as "(name:type, ...)".
func (ps Params) String() string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Required returns the number of arguments that must be supplied.
func (ps Params) Required() int {
	n := 0
	for _, p := range ps {
		if !p.Optional {
			n++
		}
	}
	return n
}

func (ps Params) check() error {
	optional := false
	for _, p := range ps {
		if p.Type == nil {
			return fmt.Errorf("parameter %s: type is nil", p.Name)
		}
		if p.Optional {
			optional = true
		} else if optional {
			return fmt.Errorf("parameter %s: required parameter follows an optional one", p.Name)
		}
	}
	return nil
}

// Validate checks args against params, position by position. A missing or
// nil argument is accepted for optional parameters only.
// Every failure is reported as an *ArgError, joined with errors.Join.
func Validate(params Params, args []any) error {
	if err := params.check(); err != nil {
		return err
	}

	var errs []error
	for i, p := range params {
		var value any
		if i < len(args) {
			value = args[i]
		}
		if value == nil {
			if !p.Optional {
				errs = append(errs, &ArgError{Position: i, Name: p.Name, Reason: "required"})
			}
			continue
		}
		if err := p.Type.Check(value); err != nil {
			errs = append(errs, &ArgError{Position: i, Name: p.Name, Reason: err.Error(), Value: value})
		}
	}
	if len(args) > len(params) {
		errs = append(errs, &ArgError{
			Position: len(params),
			Reason:   fmt.Sprintf("too many arguments: want at most %d, got %d", len(params), len(args)),
		})
	}
	return errors.Join(errs...)
}
