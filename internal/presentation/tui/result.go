package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mshogin/travel-assistant/internal/domain/models"
	"github.com/mshogin/travel-assistant/internal/domain/services"
)

// Printer writes workflow results to a terminal.
type Printer struct {
	out    io.Writer
	render func(string) (string, error)
	style  Styler

	// Debug adds the per-step diagnostics panel
	Debug bool
}

// NewPrinter creates a Printer. render is usually NewRenderer or PlainRenderer.
func NewPrinter(out io.Writer, render func(string) (string, error), style Styler) *Printer {
	if render == nil {
		render = PlainRenderer
	}
	return &Printer{out: out, render: render, style: style}
}

// PrintResult writes the itinerary, the tips section and, in debug mode,
// the outcome of every step.
func (p *Printer) PrintResult(trip models.TripRequest, result *models.ItineraryResult) {
	title := fmt.Sprintf("%d-day itinerary for %s", trip.Duration, trip.Destination)
	fmt.Fprintln(p.out, p.style.Heading(title))
	fmt.Fprintln(p.out, p.style.Faint(fmt.Sprintf("%s → %s", models.LanguageName(result.SourceLanguage), models.LanguageName(result.TargetLanguage))))

	p.printSection(result.Itinerary, "The itinerary could not be generated.")

	if result.TipsPlan != nil {
		fmt.Fprintln(p.out, p.style.Heading("Practical tips"))
		p.printSection(result.Tips, "Practical tips could not be generated.")
	}

	if p.Debug {
		p.printDiagnostics(result)
	}
}

func (p *Printer) printSection(text, empty string) {
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(p.out, p.style.Faint(empty))
		fmt.Fprintln(p.out)
		return
	}

	rendered, err := p.render(text)
	if err != nil {
		rendered = text
	}
	fmt.Fprintln(p.out, strings.TrimRight(rendered, "\n"))
	fmt.Fprintln(p.out)
}

func (p *Printer) printDiagnostics(result *models.ItineraryResult) {
	fmt.Fprintln(p.out, p.style.Heading("Diagnostics"))
	fmt.Fprintf(p.out, "run %s finished in %dms\n", result.RunID, result.Duration)

	p.printStep(models.StepDetect, outcomeOf(result.Detection.Fallback, false), result.Detection.Failure,
		"language="+result.Detection.Language)
	p.printSectionSteps(models.StepGenerate, models.StepTranslate, result.Plan)
	if result.TipsPlan != nil {
		p.printSectionSteps(models.StepTipsGenerate, models.StepTipsTranslate, *result.TipsPlan)
	}
}

func (p *Printer) printSectionSteps(generateStep, translateStep string, section models.Section) {
	gen := section.Generation
	p.printStep(generateStep, outcomeOf(gen.Fallback, false), gen.Failure,
		fmt.Sprintf("chars=%d", len(gen.Content)))

	tr := section.Translation
	detail := ""
	if tr.Target != "" {
		detail = "target=" + models.LocaleFor(tr.Target)
	}
	p.printStep(translateStep, outcomeOf(tr.Fallback, tr.Skipped), tr.Failure, detail)
}

func (p *Printer) printStep(step, outcome string, failure *models.StepError, detail string) {
	line := fmt.Sprintf("  %-15s %s", step, p.style.Outcome(outcome))
	if detail != "" {
		line += " " + p.style.Faint(detail)
	}
	fmt.Fprintln(p.out, line)

	if failure == nil {
		return
	}
	fmt.Fprintf(p.out, "    error: %s\n", failure.Error())
	if failure.Body != "" {
		fmt.Fprintf(p.out, "    body:  %s\n", failure.Body)
	}
}

func outcomeOf(fallback, skipped bool) string {
	switch {
	case fallback:
		return services.OutcomeFallback
	case skipped:
		return services.OutcomeSkipped
	default:
		return services.OutcomeSuccess
	}
}

// PrintLanguages writes the supported language table.
func (p *Printer) PrintLanguages() {
	fmt.Fprintln(p.out, p.style.Heading("Supported languages"))
	for _, lang := range models.SupportedLanguages {
		fmt.Fprintf(p.out, "  %-3s %-6s %-10s %s\n", lang.Code, lang.Locale, lang.EnglishName, lang.Name)
	}
}
