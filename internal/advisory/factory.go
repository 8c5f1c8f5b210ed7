package advisory

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	// ProviderStatic always answers with a canned reply, meant for local development.
	ProviderStatic = "static"
)

const staticReply = `{
  "summary": "Solid session (development advisor).",
  "good": ["Consistent volume across sets", "Good exercise selection"],
  "bad": ["Rest times were not logged"],
  "next_actions": ["Add 2.5 kg to the main lift", "Log rest times between sets"]
}`

type NewAdvisorParams struct {
	Provider   string
	APIKey     string
	Model      string
	BaseURL    string
	MaxTokens  int
	HttpClient *http.Client
}

// NewAdvisor builds the Advisor for the configured provider.
func NewAdvisor(ctx context.Context, params NewAdvisorParams) (Advisor, error) {
	switch strings.ToLower(params.Provider) {
	case ProviderOpenAI:
		return NewOpenAIAdvisor(OpenAIAdvisorParams{
			BaseURL:    params.BaseURL,
			APIKey:     params.APIKey,
			Model:      params.Model,
			MaxTokens:  params.MaxTokens,
			HttpClient: params.HttpClient,
		}), nil
	case ProviderGemini:
		gemini, err := NewGeminiAdvisor(ctx, GeminiAdvisorParams{
			APIKey:     params.APIKey,
			Model:      params.Model,
			BaseURL:    params.BaseURL,
			HttpClient: params.HttpClient,
		})
		if err != nil {
			return nil, err
		}
		return gemini, nil
	case ProviderStatic:
		return Static{Reply: staticReply}, nil
	default:
		return nil, fmt.Errorf("unknown advisory provider: %s", params.Provider)
	}
}

func IsKnownProvider(provider string) bool {
	switch strings.ToLower(provider) {
	case ProviderOpenAI, ProviderGemini, ProviderStatic:
		return true
	default:
		return false
	}
}
