package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// Type checks one argument value.
type Type interface {
	// Name is the type as shown in listings, e.g. "int" or "status".
	Name() string
	// Check reports why value is not acceptable, or nil.
	Check(value any) error
}

type checker struct {
	name  string
	check func(any) error
}

func (c checker) Name() string          { return c.name }
func (c checker) Check(value any) error { return c.check(value) }

// Custom creates a named type checked by fn.
func Custom(name string, fn func(any) error) Type {
	return checker{name: name, check: fn}
}

var (
	stringType   = Custom("string", checkString)
	intType      = Custom("int", checkInt)
	floatType    = Custom("float", checkFloat)
	durationType = Custom("duration", checkDuration)
	statusType   = Custom("status", checkStatus)
	propertyType = Custom("property", checkProperty)
	anyType      = Custom("any", func(any) error { return nil })
)

// String accepts strings.
func String() Type { return stringType }

// Int accepts integers, whole floats and strings holding an integer.
func Int() Type { return intType }

// Float accepts any number and strings holding a number.
func Float() Type { return floatType }

// Duration accepts a time.Duration, a string such as "250ms", or a whole
// number of nanoseconds.
func Duration() Type { return durationType }

// Status accepts a valid domain.Status or a status name such as "failure".
func Status() Type { return statusType }

// Property accepts a non-empty blackboard property name.
func Property() Type { return propertyType }

// Any accepts every value.
func Any() Type { return anyType }

func checkString(v any) error {
	if _, ok := v.(string); !ok {
		return fmt.Errorf("expected string, got %T", v)
	}
	return nil
}

func checkInt(v any) error {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float32:
		return wholeFloat(float64(n))
	case float64:
		return wholeFloat(n)
	case string:
		if _, err := strconv.ParseInt(strings.TrimSpace(n), 0, 64); err != nil {
			return fmt.Errorf("expected int, got %q", n)
		}
		return nil
	default:
		return fmt.Errorf("expected int, got %T", v)
	}
}

func wholeFloat(f float64) error {
	if f != float64(int64(f)) {
		return fmt.Errorf("expected int, got fraction %v", f)
	}
	return nil
}

func checkFloat(v any) error {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return nil
	case string:
		if _, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err != nil {
			return fmt.Errorf("expected number, got %q", n)
		}
		return nil
	default:
		return fmt.Errorf("expected number, got %T", v)
	}
}

func checkDuration(v any) error {
	switch d := v.(type) {
	case time.Duration:
		return nil
	case string:
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("expected duration: %w", err)
		}
		return nil
	case float32, float64:
		return checkInt(d)
	default:
		if checkInt(v) != nil {
			return fmt.Errorf("expected duration, got %T", v)
		}
		return nil
	}
}

func checkStatus(v any) error {
	switch s := v.(type) {
	case domain.Status:
		if !s.IsValid() {
			return fmt.Errorf("invalid status %d", int(s))
		}
		return nil
	case string:
		_, err := domain.ParseStatus(s)
		return err
	default:
		return fmt.Errorf("expected status name, got %T", v)
	}
}

func checkProperty(v any) error {
	name, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected property name, got %T", v)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("property name is empty")
	}
	return nil
}
