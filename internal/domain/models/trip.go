package models

import "strings"

// Budget is the spending level of a trip.
type Budget string

const (
	BudgetLow      Budget = "Budget"
	BudgetModerate Budget = "Moderate"
	BudgetLuxury   Budget = "Luxury"
)

// Budgets lists the accepted budget levels in display order.
var Budgets = []Budget{BudgetLow, BudgetModerate, BudgetLuxury}

// Valid reports whether b is one of the known budget levels.
func (b Budget) Valid() bool {
	for _, known := range Budgets {
		if b == known {
			return true
		}
	}
	return false
}

// Duration bounds of a trip, in days.
const (
	MinDuration = 1
	MaxDuration = 30
)

// Interests offered to the traveller.
var Interests = []string{
	"Culture",
	"Food",
	"Nature",
	"Adventure",
	"History",
	"Shopping",
	"Relaxation",
}

// TipsInterest is the single interest used to produce the supplementary tips section.
const TipsInterest = "Practical Tips"

// TripRequest carries everything needed to plan one trip.
// It is a transient value; nothing about it is persisted.
type TripRequest struct {
	// Destination is free text, used both for planning and language detection
	Destination string `json:"destination"`

	// Duration is the number of days (1-30)
	Duration int `json:"duration"`

	// Interests is the ordered list of interest labels, may be empty
	Interests []string `json:"interests,omitempty"`

	// Budget is one of Budget, Moderate or Luxury
	Budget Budget `json:"budget"`

	// PreferredLanguage is the short code of the display language (e.g. "hi")
	PreferredLanguage string `json:"preferred_language"`

	// IncludeTips asks for a supplementary practical tips section
	IncludeTips bool `json:"include_tips,omitempty"`
}

// Normalize substitutes defaults for out-of-range or missing values.
// It never rejects a request.
func (r *TripRequest) Normalize() {
	r.Destination = strings.TrimSpace(r.Destination)

	switch {
	case r.Duration < MinDuration:
		r.Duration = MinDuration
	case r.Duration > MaxDuration:
		r.Duration = MaxDuration
	}

	if !r.Budget.Valid() {
		r.Budget = BudgetLow
	}

	r.PreferredLanguage = strings.ToLower(strings.TrimSpace(r.PreferredLanguage))
	if r.PreferredLanguage == "" {
		r.PreferredLanguage = DefaultLanguage
	}

	interests := make([]string, 0, len(r.Interests))
	for _, interest := range r.Interests {
		if interest = strings.TrimSpace(interest); interest != "" {
			interests = append(interests, interest)
		}
	}
	r.Interests = interests
}

// TipsRequest derives the one-day practical tips request from r.
func (r TripRequest) TipsRequest() TripRequest {
	return TripRequest{
		Destination:       r.Destination,
		Duration:          1,
		Interests:         []string{TipsInterest},
		Budget:            r.Budget,
		PreferredLanguage: r.PreferredLanguage,
	}
}
