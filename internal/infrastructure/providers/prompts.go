package providers

import (
	"fmt"
	"strings"

	"github.com/mshogin/travel-assistant/internal/domain/models"
)

// itinerarySystemPrompt constrains the output language and content sections.
func itinerarySystemPrompt(input models.GenerationInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert travel planner specializing in %s.\n", input.Destination)
	fmt.Fprintf(&b, "Only generate the itinerary in %s (%s).", models.LanguageName(input.Language), input.Language)
	if !models.SameLanguage(input.Language, "en") {
		b.WriteString(" Avoid English.")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Create a detailed %d-day itinerary including:\n", input.Duration)
	b.WriteString("- Daily activities with timing\n")
	b.WriteString("- Local attractions & hidden gems\n")
	b.WriteString("- Cultural experiences\n")
	b.WriteString("- Food recommendations\n")
	b.WriteString("- Transport tips\n")
	fmt.Fprintf(&b, "- Budget level: %s\n", input.Budget)

	if len(input.Interests) > 0 {
		fmt.Fprintf(&b, "Interests: %s\n", strings.Join(input.Interests, ", "))
	}

	b.WriteString("Make sections short and structured.")

	return b.String()
}

// itineraryUserPrompt requests the plan itself.
func itineraryUserPrompt(input models.GenerationInput) string {
	return fmt.Sprintf("Create a %d-day itinerary for %s.", input.Duration, input.Destination)
}
