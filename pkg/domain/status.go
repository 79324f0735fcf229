package domain

import (
	"fmt"
	"strings"
)

// Status is the outcome of a single tick of a node.
type Status int

const (
	// StatusInvalid is the zero value. No node may return it.
	StatusInvalid Status = iota
	// StatusSuccess ends the current run successfully.
	StatusSuccess
	// StatusFailure ends the current run with a logical failure.
	StatusFailure
	// StatusRunning means the node needs more ticks to finish its run.
	StatusRunning
	// StatusError ends the current run because the node could not be evaluated,
	// typically because a required blackboard value was missing.
	// It must never be silently treated as StatusFailure.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusRunning:
		return "running"
	case StatusError:
		return "error"
	default:
		return "invalid"
	}
}

// IsValid reports whether s is one of the four tick outcomes.
func (s Status) IsValid() bool {
	return s >= StatusSuccess && s <= StatusError
}

// IsTerminal reports whether s ends a run.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailure || s == StatusError
}

// ParseStatus converts a case-insensitive status name into a Status.
func ParseStatus(name string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "success":
		return StatusSuccess, nil
	case "failure":
		return StatusFailure, nil
	case "running":
		return StatusRunning, nil
	case "error":
		return StatusError, nil
	default:
		return StatusInvalid, fmt.Errorf("unknown status %q", name)
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
