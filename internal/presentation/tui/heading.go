package tui

import (
	"github.com/muesli/termenv"

	"github.com/mshogin/travel-assistant/internal/domain/services"
)

// Palette used for headings and step outcomes.
const (
	colorHeading  = "#818cf8"
	colorSuccess  = "#34d399"
	colorFallback = "#fbbf24"
	colorSkipped  = "#94a3b8"
)

// Styler colours terminal text for one colour profile.
type Styler struct {
	profile termenv.Profile
}

// NewStyler detects the colour profile of stdout.
func NewStyler() Styler {
	return Styler{profile: termenv.ColorProfile()}
}

// NewPlainStyler never emits escape sequences.
func NewPlainStyler() Styler {
	return Styler{profile: termenv.Ascii}
}

// Heading renders a bold coloured title.
func (s Styler) Heading(text string) string {
	return s.profile.String(text).Foreground(s.profile.Color(colorHeading)).Bold().String()
}

// Outcome colours a step outcome label.
func (s Styler) Outcome(outcome string) string {
	color := colorSuccess
	switch outcome {
	case services.OutcomeFallback:
		color = colorFallback
	case services.OutcomeSkipped:
		color = colorSkipped
	}
	return s.profile.String(outcome).Foreground(s.profile.Color(color)).String()
}

// Faint dims secondary text.
func (s Styler) Faint(text string) string {
	return s.profile.String(text).Faint().String()
}
