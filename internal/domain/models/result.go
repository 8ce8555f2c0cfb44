package models

// DetectionResult is the outcome of language detection.
type DetectionResult struct {
	// Language is the detected code, or DefaultLanguage on fallback
	Language string `json:"language"`

	// Fallback is true when Language is a substituted default
	Fallback bool `json:"fallback"`

	Failure *StepError `json:"failure,omitempty"`
}

// GenerationResult is the outcome of one itinerary generation call.
type GenerationResult struct {
	// Content is the generated text, or the placeholder on fallback
	Content string `json:"content"`

	Fallback bool       `json:"fallback"`
	Failure  *StepError `json:"failure,omitempty"`
}

// TranslationResult is the outcome of one translation.
type TranslationResult struct {
	// Text is the translated text, or the untranslated input on fallback
	Text string `json:"text"`

	// Target is the requested short language code
	Target string `json:"target,omitempty"`

	// Skipped is true when no translation was needed
	Skipped bool `json:"skipped"`

	Fallback bool       `json:"fallback"`
	Failure  *StepError `json:"failure,omitempty"`
}

// Section is one generated-then-translated block of display text.
type Section struct {
	Generation  GenerationResult  `json:"generation"`
	Translation TranslationResult `json:"translation"`
}

// Text returns the display text of the section.
func (s Section) Text() string {
	return s.Translation.Text
}

// ItineraryResult is what one workflow run resolves to. It always holds displayable text.
type ItineraryResult struct {
	RunID string `json:"run_id"`

	// Itinerary is the final display text of the main plan
	Itinerary string `json:"itinerary"`

	// Tips is the final display text of the practical tips section, if requested
	Tips string `json:"tips,omitempty"`

	// SourceLanguage is the language the text was generated in
	SourceLanguage string `json:"source_language"`

	// TargetLanguage is the preferred display language
	TargetLanguage string `json:"target_language"`

	Detection DetectionResult `json:"detection"`
	Plan      Section         `json:"plan"`
	TipsPlan  *Section        `json:"tips_plan,omitempty"`

	// Duration is the wall time of the run in milliseconds
	Duration int64 `json:"duration_ms"`
}

// Failures collects every step failure of the run, in call order.
func (r *ItineraryResult) Failures() []*StepError {
	var failures []*StepError
	add := func(err *StepError) {
		if err != nil {
			failures = append(failures, err)
		}
	}

	add(r.Detection.Failure)
	add(r.Plan.Generation.Failure)
	add(r.Plan.Translation.Failure)
	if r.TipsPlan != nil {
		add(r.TipsPlan.Generation.Failure)
		add(r.TipsPlan.Translation.Failure)
	}
	return failures
}

// Degraded reports whether any step fell back to a default.
func (r *ItineraryResult) Degraded() bool {
	return len(r.Failures()) > 0
}
