package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mshogin/travel-assistant/internal/domain/models"
	"github.com/mshogin/travel-assistant/internal/infrastructure/config"
)

// maxResponseBytes bounds how much of a provider response is read.
const maxResponseBytes = 8 << 20

// SarvamClient holds the HTTP plumbing shared by the Sarvam adapters.
type SarvamClient struct {
	config     config.ProviderConfig
	httpClient *http.Client
}

// NewSarvamClient creates a client with a pooled transport and the configured timeout.
func NewSarvamClient(cfg config.ProviderConfig) *SarvamClient {
	return &SarvamClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        cfg.MaxIdleConns,
				MaxIdleConnsPerHost: cfg.MaxIdleConns,
				IdleConnTimeout:     cfg.IdleConnTimeout,
			},
		},
	}
}

// authHeader selects how the API key is sent.
type authHeader int

const (
	bearerAuth authHeader = iota
	subscriptionKeyAuth
)

// postJSON sends payload to url and decodes a 2xx JSON response into out.
// It returns the raw response body for diagnostics. Every failure is
// returned as a *models.StepError for step.
func (c *SarvamClient) postJSON(ctx context.Context, step, url string, auth authHeader, payload, out interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, models.NewStepError(step, models.ReasonMalformed, 0, nil, fmt.Errorf("failed to marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, models.NewStepError(step, models.ReasonTransport, 0, nil, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	switch auth {
	case subscriptionKeyAuth:
		httpReq.Header.Set("api-subscription-key", c.config.APIKey)
	default:
		httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, models.NewStepError(step, models.ReasonTransport, 0, nil, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, models.NewStepError(step, models.ReasonTransport, resp.StatusCode, nil, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return respBody, models.NewStepError(step, models.ReasonStatus, resp.StatusCode, respBody, nil)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return respBody, models.NewStepError(step, models.ReasonMalformed, resp.StatusCode, respBody, err)
	}

	return respBody, nil
}

// missingField reports a decoded response that lacks the expected value.
func missingField(step, field string, raw []byte) error {
	return models.NewStepError(step, models.ReasonMissingField, http.StatusOK, raw, fmt.Errorf("field %q is absent or empty", field))
}
