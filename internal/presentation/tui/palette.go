package tui

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"golang.org/x/term"
)

// Palette colours statuses and lifecycle states for terminal output.
type Palette struct {
	profile termenv.Profile
}

// NewPalette detects the colour support of w.
// Writers that are not terminals get plain text.
func NewPalette(w io.Writer) *Palette {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return &Palette{profile: termenv.EnvColorProfile()}
	}
	return &Palette{profile: termenv.Ascii}
}

// NewPaletteWithProfile uses profile as is.
func NewPaletteWithProfile(profile termenv.Profile) *Palette {
	return &Palette{profile: profile}
}

// Status renders s in its colour.
func (p *Palette) Status(s domain.Status) string {
	return p.paint(s.String(), statusColor(s))
}

// State renders s in the colour of the status that produced it.
func (p *Palette) State(s domain.LifecycleState) string {
	var c string
	switch s {
	case domain.StateStarted:
		c = statusColor(domain.StatusRunning)
	case domain.StateSucceeded:
		c = statusColor(domain.StatusSuccess)
	case domain.StateFailed:
		c = statusColor(domain.StatusFailure)
	case domain.StateErrored:
		c = statusColor(domain.StatusError)
	}
	return p.paint(s.String(), c)
}

// Warn renders text in the warning colour.
func (p *Palette) Warn(text string) string {
	return p.paint(text, "#facc15")
}

func (p *Palette) paint(text, color string) string {
	out := p.profile.String(text)
	if color != "" {
		out = out.Foreground(p.profile.Color(color))
	}
	if color == statusColor(domain.StatusError) {
		out = out.Bold()
	}
	return out.String()
}

func statusColor(s domain.Status) string {
	switch s {
	case domain.StatusSuccess:
		return "#22c55e"
	case domain.StatusFailure:
		return "#ef4444"
	case domain.StatusRunning:
		return "#eab308"
	case domain.StatusError:
		return "#d946ef"
	default:
		return ""
	}
}
