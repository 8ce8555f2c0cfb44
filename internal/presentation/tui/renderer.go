package tui

import (
	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is the column width markdown is wrapped at.
const DefaultWordWrap = 100

// NewRenderer returns a function that renders markdown using glamour.
// style is a glamour standard style name; empty detects light/dark background.
// If the renderer cannot be built the returned function passes text through.
func NewRenderer(style string, wordWrap int) func(string) (string, error) {
	if wordWrap <= 0 {
		wordWrap = DefaultWordWrap
	}

	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}

	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return PlainRenderer
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// PlainRenderer returns markdown unchanged.
func PlainRenderer(markdown string) (string, error) {
	return markdown, nil
}
