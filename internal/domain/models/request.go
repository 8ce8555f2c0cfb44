package models

// GenerationInput is what the itinerary generator needs for one call.
type GenerationInput struct {
	Destination string
	Duration    int
	Interests   []string
	Budget      Budget

	// Language is the code the generated text must be written in
	Language string
}

// NewGenerationInput builds a generation input for trip in language.
func NewGenerationInput(trip TripRequest, language string) GenerationInput {
	return GenerationInput{
		Destination: trip.Destination,
		Duration:    trip.Duration,
		Interests:   trip.Interests,
		Budget:      trip.Budget,
		Language:    language,
	}
}

// TranslationMode is the provider's register for translated text.
type TranslationMode string

const (
	ModeFormal            TranslationMode = "formal"
	ModeModernColloquial  TranslationMode = "modern-colloquial"
	ModeClassicColloquial TranslationMode = "classic-colloquial"
	ModeCodeMixed         TranslationMode = "code-mixed"
)

// Valid reports whether m is a known translation mode.
func (m TranslationMode) Valid() bool {
	switch m {
	case ModeFormal, ModeModernColloquial, ModeClassicColloquial, ModeCodeMixed:
		return true
	}
	return false
}
