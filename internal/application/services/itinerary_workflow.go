package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mshogin/travel-assistant/internal/domain/models"
	domainServices "github.com/mshogin/travel-assistant/internal/domain/services"
	"github.com/mshogin/travel-assistant/internal/infrastructure/logging"
)

// ItineraryWorkflow coordinates detection, generation and translation.
//
// Calls are issued strictly in sequence. Each step reports a typed
// failure and the workflow decides which default replaces it:
//   - detection falls back to the default language,
//   - generation falls back to the placeholder,
//   - translation falls back to the untranslated text.
type ItineraryWorkflow struct {
	detector   domainServices.LanguageDetector
	generator  domainServices.ItineraryGenerator
	translator domainServices.Translator

	observer domainServices.StepObserver
	logger   *logging.StructuredLogger

	defaultLanguage string
	placeholder     string
	mode            models.TranslationMode

	now   func() time.Time
	newID func() string
}

var _ domainServices.Planner = (*ItineraryWorkflow)(nil)

// WorkflowOption configures an ItineraryWorkflow.
type WorkflowOption func(*ItineraryWorkflow)

// WithObserver reports every step to observer.
func WithObserver(observer domainServices.StepObserver) WorkflowOption {
	return func(w *ItineraryWorkflow) {
		w.observer = observer
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *logging.StructuredLogger) WorkflowOption {
	return func(w *ItineraryWorkflow) {
		w.logger = logger
	}
}

// WithDefaultLanguage sets the code used when detection fails.
func WithDefaultLanguage(code string) WorkflowOption {
	return func(w *ItineraryWorkflow) {
		if code != "" {
			w.defaultLanguage = code
		}
	}
}

// WithPlaceholder sets the text shown when generation fails.
func WithPlaceholder(text string) WorkflowOption {
	return func(w *ItineraryWorkflow) {
		w.placeholder = text
	}
}

// WithTranslationMode sets the register requested from the translator.
func WithTranslationMode(mode models.TranslationMode) WorkflowOption {
	return func(w *ItineraryWorkflow) {
		if mode.Valid() {
			w.mode = mode
		}
	}
}

// WithIDGenerator replaces the run ID source.
func WithIDGenerator(newID func() string) WorkflowOption {
	return func(w *ItineraryWorkflow) {
		w.newID = newID
	}
}

// NewItineraryWorkflow creates the workflow from its three provider ports.
func NewItineraryWorkflow(
	detector domainServices.LanguageDetector,
	generator domainServices.ItineraryGenerator,
	translator domainServices.Translator,
	opts ...WorkflowOption,
) *ItineraryWorkflow {
	w := &ItineraryWorkflow{
		detector:        detector,
		generator:       generator,
		translator:      translator,
		observer:        nopObserver{},
		logger:          logging.NewNop(),
		defaultLanguage: models.DefaultLanguage,
		mode:            models.ModeFormal,
		now:             time.Now,
		newID:           uuid.NewString,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Plan runs detect, generate and (optionally) translate for trip, and the
// same for the practical tips section when trip.IncludeTips is set.
// It always returns a result with displayable text.
func (w *ItineraryWorkflow) Plan(ctx context.Context, trip models.TripRequest) *models.ItineraryResult {
	start := w.now()
	trip.Normalize()

	result := &models.ItineraryResult{
		RunID:          w.newID(),
		TargetLanguage: trip.PreferredLanguage,
	}
	logger := w.logger.WithFields(map[string]interface{}{"run_id": result.RunID})

	logger.Info("itinerary run started", map[string]interface{}{
		"destination":        trip.Destination,
		"duration_days":      trip.Duration,
		"budget":             string(trip.Budget),
		"preferred_language": trip.PreferredLanguage,
		"include_tips":       trip.IncludeTips,
	})

	result.Detection = w.detect(ctx, logger, trip.Destination)
	result.SourceLanguage = result.Detection.Language

	result.Plan = w.section(ctx, logger, models.StepGenerate, models.StepTranslate, trip, result.SourceLanguage)
	result.Itinerary = result.Plan.Text()

	if trip.IncludeTips {
		tips := w.section(ctx, logger, models.StepTipsGenerate, models.StepTipsTranslate, trip.TipsRequest(), result.SourceLanguage)
		result.TipsPlan = &tips
		result.Tips = tips.Text()
	}

	result.Duration = w.now().Sub(start).Milliseconds()
	degraded := result.Degraded()
	w.observer.ObserveRun(degraded)

	logger.Info("itinerary run finished", map[string]interface{}{
		"source_language": result.SourceLanguage,
		"degraded":        degraded,
		"duration_ms":     result.Duration,
	})

	return result
}

// detect resolves the source language, substituting the default on failure.
func (w *ItineraryWorkflow) detect(ctx context.Context, logger *logging.StructuredLogger, text string) models.DetectionResult {
	start := w.now()
	language, err := w.detector.Detect(ctx, text)
	elapsed := w.now().Sub(start)

	if err != nil {
		failure := models.AsStepError(models.StepDetect, err)
		w.fallback(logger, failure, elapsed, map[string]interface{}{"default": w.defaultLanguage})
		return models.DetectionResult{Language: w.defaultLanguage, Fallback: true, Failure: failure}
	}

	w.success(logger, models.StepDetect, elapsed, map[string]interface{}{"language": language})
	return models.DetectionResult{Language: language}
}

// section generates text for trip in source and translates it when the
// preferred language differs.
func (w *ItineraryWorkflow) section(
	ctx context.Context,
	logger *logging.StructuredLogger,
	generateStep, translateStep string,
	trip models.TripRequest,
	source string,
) models.Section {
	generation := w.generate(ctx, logger, generateStep, models.NewGenerationInput(trip, source))

	var translation models.TranslationResult
	switch {
	case generation.Fallback:
		// nothing was generated, so there is nothing to translate
		translation = w.skip(logger, translateStep, generation.Content, "generation failed")
	case !NeedsTranslation(trip.PreferredLanguage, source):
		translation = w.skip(logger, translateStep, generation.Content, "same language")
	default:
		translation = w.translate(ctx, logger, translateStep, generation.Content, trip.PreferredLanguage)
	}

	return models.Section{Generation: generation, Translation: translation}
}

func (w *ItineraryWorkflow) generate(ctx context.Context, logger *logging.StructuredLogger, step string, input models.GenerationInput) models.GenerationResult {
	start := w.now()
	content, err := w.generator.Generate(ctx, input)
	elapsed := w.now().Sub(start)

	if err != nil {
		failure := models.AsStepError(step, err)
		w.fallback(logger, failure, elapsed, nil)
		return models.GenerationResult{Content: w.placeholder, Fallback: true, Failure: failure}
	}

	w.success(logger, step, elapsed, map[string]interface{}{"content_length": len(content)})
	return models.GenerationResult{Content: content}
}

func (w *ItineraryWorkflow) translate(ctx context.Context, logger *logging.StructuredLogger, step, text, target string) models.TranslationResult {
	start := w.now()
	translated, err := w.translator.Translate(ctx, text, target, w.mode)
	elapsed := w.now().Sub(start)

	if err != nil {
		failure := models.AsStepError(step, err)
		w.fallback(logger, failure, elapsed, map[string]interface{}{"target": target})
		return models.TranslationResult{Text: text, Target: target, Fallback: true, Failure: failure}
	}

	w.success(logger, step, elapsed, map[string]interface{}{"target": target})
	return models.TranslationResult{Text: translated, Target: target}
}

func (w *ItineraryWorkflow) skip(logger *logging.StructuredLogger, step, text, reason string) models.TranslationResult {
	w.observer.ObserveStep(step, domainServices.OutcomeSkipped, 0)
	logger.Debug("step skipped", map[string]interface{}{"step": step, "reason": reason})
	return models.TranslationResult{Text: text, Skipped: true}
}

func (w *ItineraryWorkflow) success(logger *logging.StructuredLogger, step string, elapsed time.Duration, fields map[string]interface{}) {
	w.observer.ObserveStep(step, domainServices.OutcomeSuccess, elapsed.Seconds())
	logger.Info("step completed", fields, map[string]interface{}{
		"step":        step,
		"outcome":     domainServices.OutcomeSuccess,
		"duration_ms": elapsed.Milliseconds(),
	})
}

func (w *ItineraryWorkflow) fallback(logger *logging.StructuredLogger, failure *models.StepError, elapsed time.Duration, fields map[string]interface{}) {
	w.observer.ObserveStep(failure.Step, domainServices.OutcomeFallback, elapsed.Seconds())
	logger.Warn("step fell back to default", fields, map[string]interface{}{
		"step":        failure.Step,
		"outcome":     domainServices.OutcomeFallback,
		"reason":      string(failure.Reason),
		"status_code": failure.StatusCode,
		"error":       failure.Error(),
		"duration_ms": elapsed.Milliseconds(),
	})
}

// NeedsTranslation reports whether text generated in source must be
// translated for a reader of preferred. Codes compare on the base language.
func NeedsTranslation(preferred, source string) bool {
	if strings.TrimSpace(preferred) == "" {
		return false
	}
	return !models.SameLanguage(preferred, source)
}

type nopObserver struct{}

func (nopObserver) ObserveStep(string, string, float64) {}
func (nopObserver) ObserveRun(bool)                     {}
