// Package llm provides interfaces and implementations for LLM-based day-plan suggestions.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface for LLM providers.
type Client interface {
	// Chat sends messages to the LLM and returns the response.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatJSON sends messages and parses the response as JSON into the provided type.
	ChatJSON(ctx context.Context, messages []Message, result any) error
}

// complete runs one chat-completion round against an OpenAI-compatible
// endpoint and returns the first choice's text. Every provider speaks
// this protocol, so the request shape lives here.
func complete(ctx context.Context, client openai.Client, model string, messages []Message) (string, error) {
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    model,
		Messages: toOpenAIMessages(messages),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// decodeJSON strips any markdown wrapping from a model reply and
// unmarshals it into result.
func decodeJSON(content string, result any) error {
	if err := json.Unmarshal([]byte(extractJSON(content)), result); err != nil {
		return fmt.Errorf("parsing JSON response: %w (content: %s)", err, content)
	}
	return nil
}

// toOpenAIMessages converts chat messages to the OpenAI SDK union
// type. Unknown roles are sent as user messages.
func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case "system":
			out[i] = openai.SystemMessage(msg.Content)
		case "assistant":
			out[i] = openai.AssistantMessage(msg.Content)
		default:
			out[i] = openai.UserMessage(msg.Content)
		}
	}
	return out
}
