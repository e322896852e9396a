package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/aliciamoraes/sana-agent/internal/domain"
)

// MockLLM is an offline stand-in for development and tests. It echoes the
// last user message with a listening prompt, and produces a canned summary
// when the synthetic summary instruction is present.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	var lastUser string
	for _, msg := range req.Messages {
		if msg.Role == domain.RoleUser {
			lastUser = msg.Text
		}
	}

	if strings.Contains(lastUser, "session summary") {
		return "Session summary: we talked through what has been weighing on you.\n" +
			"Actionable steps:\n" +
			"1. Write down one worry before bed tonight.\n" +
			"2. Take a ten-minute walk tomorrow morning.", nil
	}

	return fmt.Sprintf("I hear you. You said %q. Could you tell me a bit more about how that makes you feel?", lastUser), nil
}
