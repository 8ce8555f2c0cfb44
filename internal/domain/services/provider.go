package services

import (
	"context"

	"github.com/mshogin/travel-assistant/internal/domain/models"
)

// The three provider ports the itinerary workflow is built from.
// They are defined in the domain layer and implemented in the
// infrastructure layer, so the workflow can be tested with fakes.
//
// Implementations report failures as *models.StepError and never
// substitute defaults themselves; that policy belongs to the workflow.

// LanguageDetector guesses the language of free text.
type LanguageDetector interface {
	// Detect returns a language code for text. Empty text is allowed.
	Detect(ctx context.Context, text string) (string, error)
}

// ItineraryGenerator writes a day-by-day plan.
type ItineraryGenerator interface {
	// Generate returns the plan text written in input.Language.
	Generate(ctx context.Context, input models.GenerationInput) (string, error)
}

// Translator converts text into a target language.
type Translator interface {
	// Translate returns text in the language identified by the short code target.
	Translate(ctx context.Context, text, target string, mode models.TranslationMode) (string, error)
}
