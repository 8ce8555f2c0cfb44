package providers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mshogin/travel-assistant/internal/domain/models"
	"github.com/mshogin/travel-assistant/internal/domain/services"
	"github.com/mshogin/travel-assistant/internal/infrastructure/config"
)

// SarvamGenerator implements services.ItineraryGenerator over the
// provider's OpenAI-compatible chat-completion endpoint.
type SarvamGenerator struct {
	client *openai.Client
	config config.GenerationConfig
}

// NewSarvamGenerator creates a generator that reuses client's HTTP transport.
func NewSarvamGenerator(client *SarvamClient, cfg config.GenerationConfig) services.ItineraryGenerator {
	sdkConfig := openai.DefaultConfig(client.config.APIKey)
	sdkConfig.BaseURL = client.config.BaseURL
	sdkConfig.HTTPClient = client.httpClient

	return &SarvamGenerator{
		client: openai.NewClientWithConfig(sdkConfig),
		config: cfg,
	}
}

// Generate sends the system and user instructions and returns the first choice's content.
func (g *SarvamGenerator) Generate(ctx context.Context, input models.GenerationInput) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: itinerarySystemPrompt(input)},
			{Role: openai.ChatMessageRoleUser, Content: itineraryUserPrompt(input)},
		},
		Temperature: g.config.Temperature,
		MaxTokens:   g.config.MaxTokens,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifySDKError(err)
	}

	if len(resp.Choices) == 0 {
		return "", missingField(models.StepGenerate, "choices", marshalForDiagnostics(resp))
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", missingField(models.StepGenerate, "choices[0].message.content", marshalForDiagnostics(resp))
	}

	return content, nil
}

// classifySDKError maps go-openai errors onto the step failure taxonomy.
func classifySDKError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return models.NewStepError(models.StepGenerate, models.ReasonStatus, apiErr.HTTPStatusCode, []byte(apiErr.Message), err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		body := reqErr.Body
		if len(body) == 0 && reqErr.Err != nil {
			body = []byte(reqErr.Err.Error())
		}
		return models.NewStepError(models.StepGenerate, models.ReasonStatus, reqErr.HTTPStatusCode, body, err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return models.NewStepError(models.StepGenerate, models.ReasonMalformed, 0, nil, err)
	}

	return models.NewStepError(models.StepGenerate, models.ReasonTransport, 0, nil, err)
}

func marshalForDiagnostics(v interface{}) []byte {
	raw, _ := json.Marshal(v)
	return raw
}
