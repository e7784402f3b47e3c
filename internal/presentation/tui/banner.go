package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Levelance ASCII banner to w.
func PrintBanner(w io.Writer, noColor bool) {
	out := NewOutput(w, noColor)
	lines := []struct {
		text  string
		color string
	}{
		{` _                _                      `, "#818cf8"},
		{`| |    _____   __| | __ _ _ __   ___ ___ `, "#a78bfa"},
		{`| |   / _ \ \ / /| |/ _' | '_ \ / __/ _ \`, "#c084fc"},
		{`| |__|  __/\ V / | | (_| | | | | (_|  __/`, "#e879f9"},
		{`|_____\___| \_/  |_|\__,_|_| |_|\___\___|`, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// NewOutput returns a termenv output for w. noColor forces plain ASCII.
func NewOutput(w io.Writer, noColor bool) *termenv.Output {
	if noColor {
		return termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}
	return termenv.NewOutput(w)
}
