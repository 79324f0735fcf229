package schema

import "fmt"

// ArgError is one rejected argument.
type ArgError struct {
	Position int
	Name     string // empty for surplus arguments
	Reason   string
	Value    any
}

func (e *ArgError) Error() string {
	name := e.Name
	if name == "" {
		name = fmt.Sprintf("#%d", e.Position)
	}
	if e.Value == nil {
		return fmt.Sprintf("argument %s: %s", name, e.Reason)
	}
	return fmt.Sprintf("argument %s: %s (got %T)", name, e.Reason, e.Value)
}

// ArgErrors collects every *ArgError in err's tree, in order.
func ArgErrors(err error) []*ArgError {
	var out []*ArgError
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		switch u := err.(type) {
		case *ArgError:
			out = append(out, u)
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				walk(e)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}
