package advisory

import (
	"context"
	"fmt"
	"net/http"

	"github.com/2beens/fitra/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiAdvisor sends prompts to Google Gemini through the genai SDK.
type GeminiAdvisor struct {
	client *genai.Client
	model  string
}

type GeminiAdvisorParams struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint, empty means the SDK default.
	BaseURL    string
	HttpClient *http.Client
}

func NewGeminiAdvisor(ctx context.Context, params GeminiAdvisorParams) (*GeminiAdvisor, error) {
	if params.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if params.Model == "" {
		params.Model = DefaultGeminiModel
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     params.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: params.HttpClient,
	}
	if params.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: params.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiAdvisor{
		client: client,
		model:  params.Model,
	}, nil
}

func (a *GeminiAdvisor) Send(ctx context.Context, prompt Prompt) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "advisory.gemini.send")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("model", a.model))

	resp, err := a.client.Models.GenerateContent(
		ctx,
		a.model,
		genai.Text(prompt.User),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: gemini generate content: %w", ErrAdvisoryUnavailable, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: gemini returned no candidates", ErrAdvisoryUnavailable)
	}

	return resp.Text(), nil
}
