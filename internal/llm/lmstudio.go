package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultLMStudioBaseURL = "http://localhost:1234/v1"

// LMStudioClient talks to a local LM Studio server through its
// OpenAI-compatible API.
type LMStudioClient struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewLMStudioClient creates a new LM Studio client.
func NewLMStudioClient(model, baseURL string) (*LMStudioClient, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("lm studio model is required")
	}
	if baseURL == "" {
		baseURL = defaultLMStudioBaseURL
	}
	return &LMStudioClient{
		client: openai.NewClient(
			option.WithBaseURL(baseURL),
			option.WithAPIKey(lmStudioAPIKey()),
		),
		model:   model,
		baseURL: baseURL,
	}, nil
}

// lmStudioAPIKey picks the key to send. LM Studio only checks it when
// configured to, but the SDK insists on one.
func lmStudioAPIKey() string {
	for _, env := range []string{"LMSTUDIO_API_KEY", "OPENAI_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return "lm-studio"
}

// Chat sends messages to the LLM and returns the response.
func (c *LMStudioClient) Chat(ctx context.Context, messages []Message) (string, error) {
	content, err := complete(ctx, c.client, c.model, messages)
	if err != nil {
		return "", fmt.Errorf("lm studio chat: %w", err)
	}
	return content, nil
}

// ChatJSON sends messages and parses the response as JSON into the provided type.
func (c *LMStudioClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := c.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return decodeJSON(content, result)
}
