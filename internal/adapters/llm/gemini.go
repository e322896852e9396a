package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/aliciamoraes/sana-agent/internal/domain"
)

// GeminiClient implements domain.LLMClient on top of the Gemini API.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

// Complete implements domain.LLMClient. The leading system message becomes
// the SystemInstruction; the rest map onto user/model contents.
func (g *GeminiClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	var system string
	var contents []*genai.Content

	for _, msg := range req.Messages {
		switch msg.Role {
		case domain.RoleSystem:
			system = msg.Text
		case domain.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Text, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Text, genai.RoleUser))
		}
	}

	temp := req.Temperature

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temp,
		MaxOutputTokens:   int32(req.MaxTokens),
	}

	res, err := g.client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}

	return text, nil
}
