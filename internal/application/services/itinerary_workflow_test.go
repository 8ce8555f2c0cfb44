package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshogin/travel-assistant/internal/domain/models"
	"github.com/mshogin/travel-assistant/internal/infrastructure/logging"
)

type fakeDetector struct {
	language string
	err      error
	calls    []string
}

func (f *fakeDetector) Detect(ctx context.Context, text string) (string, error) {
	f.calls = append(f.calls, text)
	return f.language, f.err
}

type fakeGenerator struct {
	// respond builds the reply for each call; defaults to a fixed text
	respond func(input models.GenerationInput) (string, error)
	calls   []models.GenerationInput
}

func (f *fakeGenerator) Generate(ctx context.Context, input models.GenerationInput) (string, error) {
	f.calls = append(f.calls, input)
	if f.respond != nil {
		return f.respond(input)
	}
	return "generated itinerary", nil
}

type translateCall struct {
	text   string
	target string
	mode   models.TranslationMode
}

type fakeTranslator struct {
	prefix string
	err    error
	calls  []translateCall
}

func (f *fakeTranslator) Translate(ctx context.Context, text, target string, mode models.TranslationMode) (string, error) {
	f.calls = append(f.calls, translateCall{text: text, target: target, mode: mode})
	if f.err != nil {
		return "", f.err
	}
	return f.prefix + text, nil
}

type recordingObserver struct {
	steps []string
	runs  []bool
}

func (o *recordingObserver) ObserveStep(step, outcome string, seconds float64) {
	o.steps = append(o.steps, step+":"+outcome)
}

func (o *recordingObserver) ObserveRun(degraded bool) {
	o.runs = append(o.runs, degraded)
}

func parisTrip(preferred string) models.TripRequest {
	return models.TripRequest{
		Destination:       "Paris",
		Duration:          3,
		Interests:         []string{"Food"},
		Budget:            models.BudgetModerate,
		PreferredLanguage: preferred,
	}
}

func newTestWorkflow(d *fakeDetector, g *fakeGenerator, tr *fakeTranslator, opts ...WorkflowOption) *ItineraryWorkflow {
	opts = append([]WorkflowOption{WithIDGenerator(func() string { return "run-test" })}, opts...)
	return NewItineraryWorkflow(d, g, tr, opts...)
}

func TestPlan_SameLanguageSkipsTranslation(t *testing.T) {
	detector := &fakeDetector{language: "en"}
	generator := &fakeGenerator{}
	translator := &fakeTranslator{prefix: "T:"}

	result := newTestWorkflow(detector, generator, translator).Plan(context.Background(), parisTrip("en"))

	assert.Empty(t, translator.calls)
	assert.Equal(t, "generated itinerary", result.Itinerary)
	assert.True(t, result.Plan.Translation.Skipped)
	assert.Equal(t, "run-test", result.RunID)
	assert.Equal(t, []string{"Paris"}, detector.calls)

	require.Len(t, generator.calls, 1)
	assert.Equal(t, models.GenerationInput{
		Destination: "Paris",
		Duration:    3,
		Interests:   []string{"Food"},
		Budget:      models.BudgetModerate,
		Language:    "en",
	}, generator.calls[0])
	assert.False(t, result.Degraded())
}

func TestPlan_TranslatesOnceToPreferredLanguage(t *testing.T) {
	detector := &fakeDetector{language: "en"}
	generator := &fakeGenerator{}
	translator := &fakeTranslator{prefix: "हिंदी:"}

	result := newTestWorkflow(detector, generator, translator).Plan(context.Background(), parisTrip("hi"))

	require.Len(t, translator.calls, 1)
	assert.Equal(t, "generated itinerary", translator.calls[0].text)
	assert.Equal(t, "hi", translator.calls[0].target)
	assert.Equal(t, "hi-IN", models.LocaleFor(translator.calls[0].target))
	assert.Equal(t, models.ModeFormal, translator.calls[0].mode)

	assert.Equal(t, "हिंदी:generated itinerary", result.Itinerary)
	assert.Equal(t, "en", result.SourceLanguage)
	assert.Equal(t, "hi", result.TargetLanguage)
}

func TestPlan_TranslationOnlyWhenLanguagesDiffer(t *testing.T) {
	for _, lang := range models.SupportedLanguages {
		for _, detected := range []string{"en", "hi-IN", "ta"} {
			t.Run(lang.Code+"_from_"+detected, func(t *testing.T) {
				translator := &fakeTranslator{err: errors.New("translator down")}
				result := newTestWorkflow(&fakeDetector{language: detected}, &fakeGenerator{}, translator).
					Plan(context.Background(), parisTrip(lang.Code))

				wantCall := models.BaseLanguage(detected) != lang.Code
				if wantCall {
					assert.Len(t, translator.calls, 1)
					assert.True(t, result.Plan.Translation.Fallback)
				} else {
					assert.Empty(t, translator.calls)
				}
				// identity fallback holds either way
				assert.Equal(t, "generated itinerary", result.Itinerary)
			})
		}
	}
}

func TestPlan_DetectorFailureDefaultsToEnglish(t *testing.T) {
	failures := []error{
		models.NewStepError(models.StepDetect, models.ReasonMalformed, http.StatusOK, []byte("<html>"), errors.New("invalid character")),
		models.NewStepError(models.StepDetect, models.ReasonMissingField, http.StatusOK, []byte("{}"), nil),
		models.NewStepError(models.StepDetect, models.ReasonStatus, http.StatusBadGateway, nil, nil),
		errors.New("dial tcp: connection refused"),
	}

	for _, failure := range failures {
		t.Run(failure.Error(), func(t *testing.T) {
			generator := &fakeGenerator{}
			translator := &fakeTranslator{prefix: "T:"}

			result := newTestWorkflow(&fakeDetector{err: failure}, generator, translator).
				Plan(context.Background(), parisTrip("en"))

			assert.Equal(t, "en", result.Detection.Language)
			assert.True(t, result.Detection.Fallback)
			require.NotNil(t, result.Detection.Failure)
			assert.Equal(t, models.StepDetect, result.Detection.Failure.Step)

			require.Len(t, generator.calls, 1)
			assert.Equal(t, "en", generator.calls[0].Language)
			assert.Empty(t, translator.calls)
			assert.Equal(t, "generated itinerary", result.Itinerary)
		})
	}
}

func TestPlan_CustomDefaultLanguage(t *testing.T) {
	generator := &fakeGenerator{}
	translator := &fakeTranslator{prefix: "T:"}

	result := newTestWorkflow(&fakeDetector{err: errors.New("down")}, generator, translator, WithDefaultLanguage("hi")).
		Plan(context.Background(), parisTrip("hi"))

	assert.Equal(t, "hi", result.SourceLanguage)
	assert.Empty(t, translator.calls)
}

func TestPlan_GeneratorFailureCompletes(t *testing.T) {
	malformed := models.NewStepError(models.StepGenerate, models.ReasonMalformed, http.StatusOK, []byte(`{"choices":"x"}`), nil)

	t.Run("empty by default", func(t *testing.T) {
		translator := &fakeTranslator{prefix: "T:"}
		generator := &fakeGenerator{respond: func(models.GenerationInput) (string, error) { return "", malformed }}

		result := newTestWorkflow(&fakeDetector{language: "en"}, generator, translator).
			Plan(context.Background(), parisTrip("hi"))

		assert.Equal(t, "", result.Itinerary)
		assert.True(t, result.Plan.Generation.Fallback)
		assert.Equal(t, models.ReasonMalformed, result.Plan.Generation.Failure.Reason)
		assert.True(t, result.Plan.Translation.Skipped)
		assert.Empty(t, translator.calls)
		assert.True(t, result.Degraded())
	})

	t.Run("placeholder", func(t *testing.T) {
		generator := &fakeGenerator{respond: func(models.GenerationInput) (string, error) { return "", malformed }}

		result := newTestWorkflow(&fakeDetector{language: "en"}, generator, &fakeTranslator{}, WithPlaceholder("Itinerary unavailable")).
			Plan(context.Background(), parisTrip("en"))

		assert.Equal(t, "Itinerary unavailable", result.Itinerary)
	})
}

func TestPlan_UnknownPreferredLanguageStillTranslates(t *testing.T) {
	translator := &fakeTranslator{prefix: "T:"}

	newTestWorkflow(&fakeDetector{language: "en"}, &fakeGenerator{}, translator).
		Plan(context.Background(), parisTrip("xx"))

	require.Len(t, translator.calls, 1)
	assert.Equal(t, "en-IN", models.LocaleFor(translator.calls[0].target))
}

func TestPlan_TipsSection(t *testing.T) {
	generator := &fakeGenerator{respond: func(input models.GenerationInput) (string, error) {
		if len(input.Interests) == 1 && input.Interests[0] == models.TipsInterest {
			return "tips text", nil
		}
		return "plan text", nil
	}}
	translator := &fakeTranslator{prefix: "T:"}
	observer := &recordingObserver{}

	trip := parisTrip("ta")
	trip.IncludeTips = true

	result := newTestWorkflow(&fakeDetector{language: "en"}, generator, translator, WithObserver(observer)).
		Plan(context.Background(), trip)

	require.Len(t, generator.calls, 2)
	assert.Equal(t, 1, generator.calls[1].Duration)
	assert.Equal(t, []string{models.TipsInterest}, generator.calls[1].Interests)
	assert.Equal(t, models.BudgetModerate, generator.calls[1].Budget)

	require.Len(t, translator.calls, 2)
	assert.Equal(t, "T:plan text", result.Itinerary)
	assert.Equal(t, "T:tips text", result.Tips)
	require.NotNil(t, result.TipsPlan)

	assert.Equal(t, []string{
		"detect:success",
		"generate:success",
		"translate:success",
		"tips_generate:success",
		"tips_translate:success",
	}, observer.steps)
	assert.Equal(t, []bool{false}, observer.runs)
}

func TestPlan_TipsTranslationFailureIsIndependent(t *testing.T) {
	calls := 0
	translator := &countingTranslator{fn: func(text string) (string, error) {
		calls++
		if calls == 2 {
			return "", models.NewStepError(models.StepTranslate, models.ReasonStatus, http.StatusTooManyRequests, nil, nil)
		}
		return "T:" + text, nil
	}}

	trip := parisTrip("hi")
	trip.IncludeTips = true

	result := NewItineraryWorkflow(&fakeDetector{language: "en"}, &fakeGenerator{}, translator).
		Plan(context.Background(), trip)

	assert.Equal(t, "T:generated itinerary", result.Itinerary)
	assert.Equal(t, "generated itinerary", result.Tips)

	failures := result.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, models.StepTipsTranslate, failures[0].Step)
	assert.ErrorIs(t, failures[0], models.ErrStatus)
}

type countingTranslator struct {
	fn func(text string) (string, error)
}

func (c *countingTranslator) Translate(ctx context.Context, text, target string, mode models.TranslationMode) (string, error) {
	return c.fn(text)
}

func TestPlan_NormalizesRequest(t *testing.T) {
	generator := &fakeGenerator{}

	result := newTestWorkflow(&fakeDetector{language: "en"}, generator, &fakeTranslator{}).
		Plan(context.Background(), models.TripRequest{Destination: "  Goa ", Duration: 99, Budget: "Lavish", Interests: []string{" ", "Nature"}})

	require.Len(t, generator.calls, 1)
	assert.Equal(t, "Goa", generator.calls[0].Destination)
	assert.Equal(t, models.MaxDuration, generator.calls[0].Duration)
	assert.Equal(t, models.BudgetLow, generator.calls[0].Budget)
	assert.Equal(t, []string{"Nature"}, generator.calls[0].Interests)
	assert.Equal(t, "en", result.TargetLanguage)
}

func TestPlan_ObserverAndLogsOnFallback(t *testing.T) {
	buf := &bytes.Buffer{}
	observer := &recordingObserver{}

	newTestWorkflow(
		&fakeDetector{err: errors.New("timeout")},
		&fakeGenerator{},
		&fakeTranslator{err: errors.New("down")},
		WithObserver(observer),
		WithLogger(logging.NewStructuredLogger(buf, logging.DebugLevel)),
		WithTranslationMode(models.ModeCodeMixed),
	).Plan(context.Background(), parisTrip("bn"))

	assert.Equal(t, []string{"detect:fallback", "generate:success", "translate:fallback"}, observer.steps)
	assert.Equal(t, []bool{true}, observer.runs)

	logs := buf.String()
	assert.Contains(t, logs, `"message":"step fell back to default"`)
	assert.Contains(t, logs, `"run_id":"run-test"`)
	assert.Equal(t, 2, strings.Count(logs, `"outcome":"fallback"`))
}

func TestPlan_CancelledContextStillResolves(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := newTestWorkflow(
		&fakeDetector{err: context.Canceled},
		&fakeGenerator{respond: func(models.GenerationInput) (string, error) { return "", context.Canceled }},
		&fakeTranslator{},
	).Plan(ctx, parisTrip("hi"))

	require.NotNil(t, result)
	assert.Equal(t, models.ReasonTransport, result.Plan.Generation.Failure.Reason)
	assert.ErrorIs(t, result.Plan.Generation.Failure, context.Canceled)
}

func TestNeedsTranslation(t *testing.T) {
	tests := []struct {
		preferred, source string
		want              bool
	}{
		{"en", "en", false},
		{"en", "en-IN", false},
		{"hi", "hi-IN", false},
		{"hi", "en", true},
		{"xx", "en", true},
		{"", "ta", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NeedsTranslation(tt.preferred, tt.source), "%s <- %s", tt.preferred, tt.source)
	}
}
