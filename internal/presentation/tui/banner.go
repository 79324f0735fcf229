package tui

import (
	"fmt"
	"io"
)

// PrintBanner outputs the ASCII art banner for bt.
func (p *Palette) PrintBanner(w io.Writer) {
	// Using a subtle gradient-like color scheme (Green/Teal)
	lines := []struct{ text, color string }{
		{"  _     _   ", "#4ade80"},
		{" | |__ | |_ ", "#34d399"},
		{" | '_ \\| __|", "#2dd4bf"},
		{" | |_) | |_ ", "#22d3ee"},
		{" |_.__/ \\__|", "#38bdf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.profile.String(l.text).Foreground(p.profile.Color(l.color)))
	}
	fmt.Fprintln(w)
}
