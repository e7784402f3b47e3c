package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// When styled is false the "notty" style is used, which keeps the layout
// but emits no escape sequences.
func NewRenderer(styled bool) (func(string) (string, error), error) {
	style := glamour.WithStandardStyle("notty")
	if styled {
		style = glamour.WithAutoStyle() // Automatically detect light/dark background
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}
