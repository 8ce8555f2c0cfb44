package providers

import (
	"context"
	"strings"

	"github.com/mshogin/travel-assistant/internal/domain/models"
	"github.com/mshogin/travel-assistant/internal/domain/services"
)

type detectRequest struct {
	Text string `json:"text"`
}

// detectResponse accepts both the documented "language" key and the
// "language_code" key the provider also returns.
type detectResponse struct {
	Language     string `json:"language"`
	LanguageCode string `json:"language_code"`
}

// SarvamDetector implements services.LanguageDetector over the detect-language endpoint.
type SarvamDetector struct {
	client *SarvamClient
}

// NewSarvamDetector creates a detector sharing client's transport.
func NewSarvamDetector(client *SarvamClient) services.LanguageDetector {
	return &SarvamDetector{client: client}
}

// Detect sends text to the provider and returns the detected language code.
func (d *SarvamDetector) Detect(ctx context.Context, text string) (string, error) {
	url := d.client.config.BaseURL + d.client.config.DetectPath

	var resp detectResponse
	raw, err := d.client.postJSON(ctx, models.StepDetect, url, bearerAuth, detectRequest{Text: text}, &resp)
	if err != nil {
		return "", err
	}

	language := strings.TrimSpace(resp.Language)
	if language == "" {
		language = strings.TrimSpace(resp.LanguageCode)
	}
	if language == "" {
		return "", missingField(models.StepDetect, "language", raw)
	}

	return language, nil
}
