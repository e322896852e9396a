package conversation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aliciamoraes/sana-agent/internal/adapters/storage/memory"
	"github.com/aliciamoraes/sana-agent/internal/app/conversation"
	"github.com/aliciamoraes/sana-agent/internal/domain"
)

// fakeLLM captures every request and replies (or fails) on demand.
type fakeLLM struct {
	reply string
	err   error
	reqs  []domain.CompletionRequest
}

func (f *fakeLLM) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestService(llm domain.LLMClient) (*conversation.Service, *memory.SummaryStore) {
	store := memory.NewSummaryStore()
	return conversation.NewService(llm, store, "meta-llama/llama-3-70b-instruct"), store
}

func completeOnboarding(t *testing.T, svc *conversation.Service, session *domain.Session) {
	t.Helper()
	ctx := context.Background()

	answers := []struct {
		field domain.FieldID
		value string
	}{
		{domain.FieldName, "Alex"},
		{domain.FieldGender, "Non-binary"},
		{domain.FieldBirthday, "1990-04-23"},
		{domain.FieldGoal, "Reduce stress"},
	}
	for _, a := range answers {
		if err := svc.SubmitAnswer(ctx, session, a.field, a.value); err != nil {
			t.Fatalf("SubmitAnswer(%s) failed: %v", a.field, err)
		}
	}
}

func TestOnboardingScenarioInjectsIntroOnce(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(&fakeLLM{reply: "ok"})
	session := svc.StartSession(ctx, domain.VariantClassic)

	q, ok := svc.NextQuestion(session)
	if !ok || q.Field != domain.FieldName {
		t.Fatalf("first question = %v, want name", q.Field)
	}

	completeOnboarding(t, svc, session)

	if _, ok := svc.NextQuestion(session); ok {
		t.Fatal("NextQuestion still returns a question after onboarding")
	}

	msgs := session.Transcript.Messages()
	if len(msgs) != 2 {
		t.Fatalf("transcript has %d entries, want system + intro", len(msgs))
	}
	if msgs[0].Role != domain.RoleSystem {
		t.Fatalf("element 0 role = %s, want system", msgs[0].Role)
	}
	if msgs[1].Role != domain.RoleAssistant {
		t.Fatalf("element 1 role = %s, want assistant", msgs[1].Role)
	}
	if !strings.HasPrefix(msgs[1].Text, "Alex, I'm glad you're here") {
		t.Fatalf("intro = %q", msgs[1].Text)
	}
	if !strings.Contains(msgs[1].Text, "**reduce stress**") {
		t.Fatalf("intro missing lower-cased goal: %q", msgs[1].Text)
	}
	if !session.IntroShown {
		t.Fatal("IntroShown not set")
	}
}

func TestInsightVariantGatesOnQuiz(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(&fakeLLM{reply: "ok"})
	session := svc.StartSession(ctx, domain.VariantInsight)

	completeOnboarding(t, svc, session)

	q, ok := svc.NextQuestion(session)
	if !ok || q.Field != domain.FieldPersonality {
		t.Fatalf("next question = %v, want personality_profile", q.Field)
	}
	if session.IntroShown {
		t.Fatal("intro injected before quiz was answered")
	}
	if _, err := svc.SendMessage(ctx, session, "hello"); err == nil {
		t.Fatal("SendMessage allowed during onboarding")
	}

	err := svc.SubmitQuiz(ctx, session, map[domain.TraitKey]int{
		domain.TraitEnergy:         60,
		domain.TraitDecisionStyle:  80,
		domain.TraitFocus:          40,
		domain.TraitStructure:      20,
		domain.TraitStressResponse: 100,
	})
	if err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}
	if !session.IntroShown {
		t.Fatal("intro not injected after quiz completed onboarding")
	}
}

func TestIsSummaryCommand(t *testing.T) {
	for _, in := range []string{"summary", "Summary", " summary ", "END SESSION", "end session", "\tEnd Session\n"} {
		if !conversation.IsSummaryCommand(in) {
			t.Fatalf("IsSummaryCommand(%q) = false", in)
		}
	}
	for _, in := range []string{"summary!", "end the session", "summarize", ""} {
		if conversation.IsSummaryCommand(in) {
			t.Fatalf("IsSummaryCommand(%q) = true", in)
		}
	}
}

func TestSendMessageOrdinaryTurn(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{reply: "  That sounds heavy. Tell me more.  "}
	svc, _ := newTestService(llm)
	session := svc.StartSession(ctx, domain.VariantClassic)
	completeOnboarding(t, svc, session)

	before := session.Transcript.Len()
	reply, err := svc.SendMessage(ctx, session, "I had a rough week")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if reply.Role != domain.RoleAssistant {
		t.Fatalf("reply role = %s", reply.Role)
	}
	if reply.Text != "That sounds heavy. Tell me more." {
		t.Fatalf("reply not trimmed: %q", reply.Text)
	}
	if got := session.Transcript.Len() - before; got != 2 {
		t.Fatalf("transcript grew by %d, want 2", got)
	}

	if len(llm.reqs) != 1 {
		t.Fatalf("LLM called %d times", len(llm.reqs))
	}
	req := llm.reqs[0]
	if req.MaxTokens != 800 {
		t.Fatalf("MaxTokens = %d, want 800", req.MaxTokens)
	}
	if req.Temperature != 0.4 {
		t.Fatalf("Temperature = %v, want 0.4", req.Temperature)
	}
	if last := req.Messages[len(req.Messages)-1]; last.Role != domain.RoleUser || last.Text != "I had a rough week" {
		t.Fatalf("last request message = %+v", last)
	}
	if req.Messages[0].Role != domain.RoleSystem {
		t.Fatal("request does not start with the system prompt")
	}
}

func TestSendMessageSummaryTurn(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{reply: "Key points... Actionable steps..."}
	svc, store := newTestService(llm)
	session := svc.StartSession(ctx, domain.VariantClassic)
	completeOnboarding(t, svc, session)

	before := session.Transcript.Len() // system + intro
	if _, err := svc.SendMessage(ctx, session, " Summary "); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	req := llm.reqs[0]
	if req.MaxTokens != 500 {
		t.Fatalf("MaxTokens = %d, want 500", req.MaxTokens)
	}
	if req.Temperature != 0.4 {
		t.Fatalf("Temperature = %v, want 0.4", req.Temperature)
	}

	// history (incl. the new user entry) plus the synthetic instruction.
	if len(req.Messages) != before+2 {
		t.Fatalf("request has %d messages, want %d", len(req.Messages), before+2)
	}
	synthetic := req.Messages[len(req.Messages)-1]
	if synthetic.Role != domain.RoleUser || !strings.Contains(synthetic.Text, "actionable steps") {
		t.Fatalf("synthetic instruction = %+v", synthetic)
	}

	// The synthetic instruction is never appended to the transcript.
	if got := session.Transcript.Len() - before; got != 2 {
		t.Fatalf("transcript grew by %d, want 2", got)
	}

	entries, err := store.ListBySession(session.ID)
	if err != nil {
		t.Fatalf("ListBySession failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "Key points... Actionable steps..." {
		t.Fatalf("summary entries = %+v", entries)
	}
}

func TestSendMessageFailureStaysInline(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{err: errors.New("upstream timeout")}
	svc, store := newTestService(llm)
	session := svc.StartSession(ctx, domain.VariantClassic)
	completeOnboarding(t, svc, session)

	before := session.Transcript.Len()
	reply, err := svc.SendMessage(ctx, session, "hello?")
	if err != nil {
		t.Fatalf("completion failure escaped the dispatcher: %v", err)
	}

	if reply.Role != domain.RoleAssistant {
		t.Fatalf("reply role = %s", reply.Role)
	}
	if !strings.HasPrefix(reply.Text, "⚠️ Error: ") || !strings.Contains(reply.Text, "upstream timeout") {
		t.Fatalf("reply = %q, want marked error text", reply.Text)
	}
	if got := session.Transcript.Len() - before; got != 2 {
		t.Fatalf("transcript grew by %d, want 2", got)
	}

	// A failed summary turn records nothing.
	if _, err := svc.SendMessage(ctx, session, "summary"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	entries, _ := store.ListBySession(session.ID)
	if len(entries) != 0 {
		t.Fatalf("failed summary turn recorded %d entries", len(entries))
	}
}

func TestSystemPromptRefreshOverwritesElementZero(t *testing.T) {
	ctx := context.Background()
	llm := &fakeLLM{reply: "ok"}
	svc, _ := newTestService(llm)
	session := svc.StartSession(ctx, domain.VariantClassic)
	completeOnboarding(t, svc, session)

	first := session.Transcript.SystemPrompt()
	if first == "" {
		t.Fatal("system prompt not seeded")
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.SendMessage(ctx, session, "another turn"); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
	}

	if session.Transcript.SystemPrompt() != first {
		t.Fatal("system prompt changed for an unchanged profile")
	}
	if session.Transcript.Messages()[0].Role != domain.RoleSystem {
		t.Fatal("element 0 is no longer the system prompt")
	}
	if session.Transcript.Len() != 2+3*2 {
		t.Fatalf("transcript length = %d, want system+intro+3 turns", session.Transcript.Len())
	}
}
