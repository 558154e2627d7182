package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const defaultOllamaBaseURL = "http://localhost:11434/v1"

// OllamaClient implements the Client interface using Ollama's
// OpenAI-compatible API.
type OllamaClient struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewOllamaClient creates a new Ollama client.
func NewOllamaClient(model, baseURL string) (*OllamaClient, error) {
	if model == "" {
		return nil, errors.New("ollama model is required")
	}
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}

	// Ollama ignores the API key but the SDK requires one.
	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey("ollama"),
	)

	return &OllamaClient{
		client:  client,
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Chat sends messages to the LLM and returns the response.
func (c *OllamaClient) Chat(ctx context.Context, messages []Message) (string, error) {
	content, err := complete(ctx, c.client, c.model, messages)
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	return content, nil
}

// ChatJSON sends messages and parses the response as JSON into the
// provided type. Ollama supports forced JSON output, so the request
// asks for it instead of relying on the prompt alone.
func (c *OllamaClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: toOpenAIMessages(messages),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return fmt.Errorf("ollama chat json: %w", err)
	}
	if len(resp.Choices) == 0 {
		return errors.New("no response choices returned")
	}
	return decodeJSON(resp.Choices[0].Message.Content, result)
}
