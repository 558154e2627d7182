package llm

import (
	"fmt"
	"strings"
)

const (
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
	ProviderCopilot  = "copilot"
)

// NewClient creates an LLM client based on provider configuration.
func NewClient(provider, model, baseURL string) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderLMStudio, "lm-studio", "llmstudio":
		return NewLMStudioClient(model, baseURL)
	case ProviderCopilot:
		return NewCopilotClient(model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
