package services

import (
	"context"

	"github.com/mshogin/travel-assistant/internal/domain/models"
)

// Planner turns a trip request into display text.
//
// Plan never fails: every step degrades to the previous step's value,
// so the result always holds something to show. Step failures are
// reported inside the result.
type Planner interface {
	Plan(ctx context.Context, trip models.TripRequest) *models.ItineraryResult
}

// StepObserver receives one notification per provider call and one per run.
type StepObserver interface {
	ObserveStep(step string, outcome string, seconds float64)
	ObserveRun(degraded bool)
}

// Step outcomes reported to observers.
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeSkipped  = "skipped"
)
