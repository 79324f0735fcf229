package registry

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Args are the positional construction arguments of a node, as recorded by
// the builder. Values arrive loosely typed from descriptor files, so they
// are decoded with weak typing: "3" decodes into an int and "250ms" into a
// time.Duration.
type Args []any

// Len returns the number of supplied arguments.
func (a Args) Len() int { return len(a) }

// Has reports whether argument i was supplied.
func (a Args) Has(i int) bool { return i >= 0 && i < len(a) && a[i] != nil }

// Decode decodes argument i into out, which must be a pointer.
func (a Args) Decode(i int, out any) error {
	if !a.Has(i) {
		return fmt.Errorf("argument %d: missing", i)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(a[i]); err != nil {
		return fmt.Errorf("argument %d: %w", i, err)
	}
	return nil
}

// DecodeOr decodes argument i into out when present and leaves out untouched
// otherwise.
func (a Args) DecodeOr(i int, out any) error {
	if !a.Has(i) {
		return nil
	}
	return a.Decode(i, out)
}
