package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/fitra/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"
)

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type string `json:"type"`
}

type openAIRequest struct {
	Model          string                `json:"model"`
	Messages       []openAIMessage       `json:"messages"`
	MaxTokens      int                   `json:"max_tokens,omitempty"`
	Temperature    float64               `json:"temperature"`
	ResponseFormat *openAIResponseFormat `json:"response_format,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenAIAdvisor talks to an OpenAI compatible chat completions endpoint.
type OpenAIAdvisor struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

type OpenAIAdvisorParams struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxTokens  int
	HttpClient *http.Client
}

func NewOpenAIAdvisor(params OpenAIAdvisorParams) *OpenAIAdvisor {
	if params.BaseURL == "" {
		params.BaseURL = DefaultOpenAIBaseURL
	}
	if params.Model == "" {
		params.Model = DefaultOpenAIModel
	}
	if params.HttpClient == nil {
		params.HttpClient = &http.Client{Timeout: time.Minute}
	}
	return &OpenAIAdvisor{
		baseURL:    strings.TrimSuffix(params.BaseURL, "/"),
		apiKey:     params.APIKey,
		model:      params.Model,
		maxTokens:  params.MaxTokens,
		httpClient: params.HttpClient,
	}
}

func (a *OpenAIAdvisor) Send(ctx context.Context, prompt Prompt) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "advisory.openai.send")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("model", a.model))

	if a.apiKey == "" {
		return "", fmt.Errorf("%w: openai api key not set", ErrAdvisoryUnavailable)
	}

	reqBody := openAIRequest{
		Model: a.model,
		Messages: []openAIMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		MaxTokens:      a.maxTokens,
		Temperature:    0.7,
		ResponseFormat: &openAIResponseFormat{Type: "json_object"},
	}
	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %w", ErrAdvisoryUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", ErrAdvisoryUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	startTime := time.Now()
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: http client do: %w", ErrAdvisoryUnavailable, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", ErrAdvisoryUnavailable, err)
	}

	span.SetAttributes(attribute.Int("status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: openai status %d: %s", ErrAdvisoryUnavailable, resp.StatusCode, respBytes)
	}

	var openAIResp openAIResponse
	if err := json.Unmarshal(respBytes, &openAIResp); err != nil {
		return "", fmt.Errorf("%w: unmarshal response: %w", ErrAdvisoryUnavailable, err)
	}
	if openAIResp.Error != nil {
		return "", fmt.Errorf("%w: openai error: %s", ErrAdvisoryUnavailable, openAIResp.Error.Message)
	}
	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", ErrAdvisoryUnavailable)
	}

	content := openAIResp.Choices[0].Message.Content
	log.Debugf("openai reply received in %s, len: %d", time.Since(startTime), len(content))

	return content, nil
}
