package providers

import (
	"context"
	"strings"

	"github.com/mshogin/travel-assistant/internal/domain/models"
	"github.com/mshogin/travel-assistant/internal/domain/services"
)

// Fixed translation options sent with every request.
const (
	sourceLanguageAuto = "auto"
	outputScript       = "fully-native"
	numeralsFormat     = "international"
)

type translateRequest struct {
	Input               string                 `json:"input"`
	SourceLanguageCode  string                 `json:"source_language_code"`
	TargetLanguageCode  string                 `json:"target_language_code"`
	Mode                models.TranslationMode `json:"mode"`
	EnablePreprocessing bool                   `json:"enable_preprocessing"`
	OutputScript        string                 `json:"output_script"`
	NumeralsFormat      string                 `json:"numerals_format"`
}

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
}

// SarvamTranslator implements services.Translator over the translate endpoint.
type SarvamTranslator struct {
	client *SarvamClient
}

// NewSarvamTranslator creates a translator sharing client's transport.
func NewSarvamTranslator(client *SarvamClient) services.Translator {
	return &SarvamTranslator{client: client}
}

// Translate converts text into the locale mapped from target.
func (t *SarvamTranslator) Translate(ctx context.Context, text, target string, mode models.TranslationMode) (string, error) {
	if !mode.Valid() {
		mode = models.ModeFormal
	}

	req := translateRequest{
		Input:               text,
		SourceLanguageCode:  sourceLanguageAuto,
		TargetLanguageCode:  models.LocaleFor(target),
		Mode:                mode,
		EnablePreprocessing: true,
		OutputScript:        outputScript,
		NumeralsFormat:      numeralsFormat,
	}

	var resp translateResponse
	raw, err := t.client.postJSON(ctx, models.StepTranslate, t.client.config.TranslateURL, subscriptionKeyAuth, req, &resp)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(resp.TranslatedText) == "" {
		return "", missingField(models.StepTranslate, "translated_text", raw)
	}

	return resp.TranslatedText, nil
}
