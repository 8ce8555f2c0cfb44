package models

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Domain-level errors shared by the provider adapters and the workflow.
var (
	// Provider call errors
	ErrTransport    = errors.New("provider request failed")
	ErrStatus       = errors.New("provider returned non-2xx status")
	ErrMalformed    = errors.New("provider response is malformed")
	ErrMissingField = errors.New("provider response is missing expected field")

	// ErrMissingAPIKey is reported at startup; calls still run and fall back
	ErrMissingAPIKey = errors.New("provider api key is not configured")
)

// Step names used in results, logs and metrics.
const (
	StepDetect        = "detect"
	StepGenerate      = "generate"
	StepTranslate     = "translate"
	StepTipsGenerate  = "tips_generate"
	StepTipsTranslate = "tips_translate"
)

// FailureReason classifies why a provider call did not yield a value.
type FailureReason string

const (
	ReasonTransport    FailureReason = "transport"
	ReasonStatus       FailureReason = "status"
	ReasonMalformed    FailureReason = "malformed"
	ReasonMissingField FailureReason = "missing_field"
)

// sentinel returns the package error matching the reason.
func (r FailureReason) sentinel() error {
	switch r {
	case ReasonTransport:
		return ErrTransport
	case ReasonStatus:
		return ErrStatus
	case ReasonMalformed:
		return ErrMalformed
	default:
		return ErrMissingField
	}
}

// StepError is the typed failure of one provider call.
type StepError struct {
	Step       string        `json:"step"`
	Reason     FailureReason `json:"reason"`
	StatusCode int           `json:"status_code,omitempty"`

	// Body holds a prefix of the raw response for diagnostics
	Body string `json:"body,omitempty"`

	Err error `json:"-"`
}

// NewStepError builds a StepError. Body is truncated to keep results small.
func NewStepError(step string, reason FailureReason, statusCode int, body []byte, err error) *StepError {
	const maxBody = 2048
	if len(body) > maxBody {
		cut := maxBody
		// back off to a rune boundary so the snippet stays valid UTF-8
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut]
	}
	return &StepError{
		Step:       step,
		Reason:     reason,
		StatusCode: statusCode,
		Body:       string(body),
		Err:        err,
	}
}

func (e *StepError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Step, e.Reason.sentinel())
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the reason sentinel and the underlying cause.
func (e *StepError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Reason.sentinel()}
	}
	return []error{e.Reason.sentinel(), e.Err}
}

// AsStepError converts any error into a StepError labelled with step.
// Errors that are not StepErrors are classified as transport failures.
func AsStepError(step string, err error) *StepError {
	if err == nil {
		return nil
	}
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		relabelled := *stepErr
		relabelled.Step = step
		return &relabelled
	}
	return NewStepError(step, ReasonTransport, 0, nil, err)
}
