package llm

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/aliciamoraes/sana-agent/internal/domain"
)

// DefaultBaseURL points at OpenRouter's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterClient implements domain.LLMClient against any
// OpenAI-compatible chat-completions endpoint.
type OpenRouterClient struct {
	client openai.Client
}

// NewOpenRouterClient creates the client. baseURL may be empty to use the
// OpenRouter default. Retries are disabled: a failed turn is surfaced
// inline by the dispatcher instead.
func NewOpenRouterClient(apiKey, baseURL string) (*OpenRouterClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)

	return &OpenRouterClient{client: client}, nil
}

// Complete implements domain.LLMClient.
func (c *OpenRouterClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case domain.RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Text))
		case domain.RoleUser:
			messages = append(messages, openai.UserMessage(msg.Text))
		case domain.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Text))
		default:
			return "", fmt.Errorf("unsupported role %q", msg.Role)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	params.Temperature = openai.Float(float64(req.Temperature))

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	text := resp.Choices[0].Message.Content
	if text == "" {
		text = resp.Choices[0].Message.Refusal
	}
	if text == "" {
		return "", fmt.Errorf("chat completion returned empty text")
	}

	return text, nil
}
