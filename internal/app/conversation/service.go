package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aliciamoraes/sana-agent/internal/app/onboarding"
	"github.com/aliciamoraes/sana-agent/internal/app/prompt"
	"github.com/aliciamoraes/sana-agent/internal/domain"
	"github.com/aliciamoraes/sana-agent/internal/observability"
)

const (
	turnMaxTokens    = 800
	summaryMaxTokens = 500
	temperature      = 0.4

	// summaryInstruction is the synthetic trailing user message sent on
	// summary turns. It is never appended to the transcript itself.
	summaryInstruction = "Please write a session summary with key points discussed and actionable steps I can take."

	// errorPrefix marks an assistant entry that stands in for a failed
	// completion call.
	errorPrefix = "⚠️ Error: "
)

// introTemplate interpolates the user's name and lower-cased goal.
const introTemplate = "%s, I'm glad you're here. Your main goal is **%s**.\n\n" +
	"Let's start gently. Could you share what's been on your mind lately?"

// summaryCommands are matched case-insensitively after trimming.
var summaryCommands = map[string]bool{
	"summary":     true,
	"end session": true,
}

// Service drives one conversation session: onboarding, system prompt
// upkeep, turn dispatch, and summary recording.
type Service struct {
	llm       domain.LLMClient
	summaries domain.SummaryStore
	model     string
	now       func() time.Time
}

func NewService(llm domain.LLMClient, summaries domain.SummaryStore, model string) *Service {
	return &Service{
		llm:       llm,
		summaries: summaries,
		model:     model,
		now:       time.Now,
	}
}

// StartSession creates an empty session for the given variant. Profile and
// transcript live only inside the returned session object.
func (s *Service) StartSession(ctx context.Context, variant domain.Variant) *domain.Session {
	now := s.now()

	session := &domain.Session{
		ID:         domain.SessionID(uuid.NewString()),
		Variant:    variant,
		Transcript: domain.NewTranscript(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	observability.LoggerFromContext(ctx).Info("session started",
		"session_id", session.ID,
		"variant", variant,
	)

	return session
}

// Sequencer returns the onboarding sequencer for a session's variant.
func (s *Service) Sequencer(session *domain.Session) *onboarding.Sequencer {
	return onboarding.NewSequencer(session.Variant)
}

// NextQuestion returns the first unanswered onboarding question, or
// ok=false once onboarding is complete.
func (s *Service) NextQuestion(session *domain.Session) (onboarding.Question, bool) {
	seq := s.Sequencer(session)
	field := seq.Next(session.Profile)
	if field == domain.FieldNone {
		return onboarding.Question{}, false
	}
	for _, q := range seq.Questions() {
		if q.Field == field {
			return q, true
		}
	}
	return onboarding.Question{}, false
}

// SubmitAnswer commits one text/choice/date answer and, once the profile
// becomes complete, seeds the transcript and injects the intro message.
func (s *Service) SubmitAnswer(ctx context.Context, session *domain.Session, field domain.FieldID, value string) error {
	if err := s.Sequencer(session).Answer(&session.Profile, field, value); err != nil {
		return err
	}
	s.afterProfileChange(ctx, session)
	return nil
}

// SubmitQuiz commits all five trait answers atomically.
func (s *Service) SubmitQuiz(ctx context.Context, session *domain.Session, answers map[domain.TraitKey]int) error {
	if err := s.Sequencer(session).AnswerQuiz(&session.Profile, answers); err != nil {
		return err
	}
	s.afterProfileChange(ctx, session)
	return nil
}

func (s *Service) afterProfileChange(ctx context.Context, session *domain.Session) {
	session.UpdatedAt = s.now()
	if s.Sequencer(session).Complete(session.Profile) {
		s.refreshSystemPrompt(session)
		s.injectIntro(ctx, session)
	}
}

// refreshSystemPrompt rebuilds transcript element 0 from the current
// profile. Build is idempotent, so re-running it on every turn is safe.
func (s *Service) refreshSystemPrompt(session *domain.Session) {
	session.Transcript.SetSystemPrompt(domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		Role:      domain.RoleSystem,
		Text:      prompt.Build(session.Variant, session.Profile),
		CreatedAt: s.now(),
	})
}

// injectIntro appends the one-time personalized greeting. Guarded by
// IntroShown so it can never repeat within a session.
func (s *Service) injectIntro(ctx context.Context, session *domain.Session) {
	if session.IntroShown {
		return
	}

	text := fmt.Sprintf(introTemplate, session.Profile.Name, strings.ToLower(session.Profile.Goal))
	session.Transcript.Append(domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		Role:      domain.RoleAssistant,
		Text:      text,
		CreatedAt: s.now(),
	})
	session.IntroShown = true

	observability.LoggerFromContext(ctx).Info("onboarding complete",
		"session_id", session.ID,
		"name", session.Profile.Name,
	)
}

// IsSummaryCommand reports whether the input triggers the summary branch.
// Matching is exact on the trimmed, lower-cased text.
func IsSummaryCommand(input string) bool {
	return summaryCommands[strings.ToLower(strings.TrimSpace(input))]
}

// SendMessage runs one turn: append the user message, call the completion
// backend over the full transcript, and append exactly one assistant entry.
// Completion failures never escape; they are surfaced as an inline
// error-marked assistant entry so the session stays usable.
func (s *Service) SendMessage(ctx context.Context, session *domain.Session, text string) (*domain.Message, error) {
	if !s.Sequencer(session).Complete(session.Profile) {
		return nil, fmt.Errorf("onboarding incomplete: next field %q", s.Sequencer(session).Next(session.Profile))
	}

	log := observability.LoggerFromContext(ctx).With("session_id", session.ID)

	s.refreshSystemPrompt(session)

	session.Transcript.Append(domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		Role:      domain.RoleUser,
		Text:      text,
		CreatedAt: s.now(),
	})

	isSummary := IsSummaryCommand(text)

	req := domain.CompletionRequest{
		Model:       s.model,
		Messages:    session.Transcript.Messages(),
		MaxTokens:   turnMaxTokens,
		Temperature: temperature,
	}
	if isSummary {
		// The summary instruction only changes what is sent; the reply is
		// appended like any other assistant turn.
		msgs := make([]domain.Message, 0, session.Transcript.Len()+1)
		msgs = append(msgs, session.Transcript.Messages()...)
		msgs = append(msgs, domain.Message{
			Role: domain.RoleUser,
			Text: summaryInstruction,
		})
		req.Messages = msgs
		req.MaxTokens = summaryMaxTokens
	}

	reply, err := s.llm.Complete(ctx, req)
	if err != nil {
		log.Error("completion failed", "error", err)
		reply = errorPrefix + err.Error()
	} else {
		reply = strings.TrimSpace(reply)
		if isSummary {
			s.recordSummary(ctx, session, reply)
		}
	}

	agentMsg := domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		Role:      domain.RoleAssistant,
		Text:      reply,
		CreatedAt: s.now(),
	}
	session.Transcript.Append(agentMsg)
	session.UpdatedAt = s.now()

	log.Info("turn completed", "summary", isSummary, "failed", err != nil)

	return &agentMsg, nil
}

func (s *Service) recordSummary(ctx context.Context, session *domain.Session, text string) {
	if s.summaries == nil {
		return
	}

	entry := &domain.SummaryEntry{
		ID:        domain.SummaryEntryID(uuid.NewString()),
		SessionID: session.ID,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.summaries.AppendSummary(entry); err != nil {
		observability.LoggerFromContext(ctx).Error("failed to record summary",
			"session_id", session.ID,
			"error", err,
		)
	}
}

// Summaries returns the summaries recorded for a session, oldest first.
func (s *Service) Summaries(session *domain.Session) ([]*domain.SummaryEntry, error) {
	if s.summaries == nil {
		return nil, nil
	}
	return s.summaries.ListBySession(session.ID)
}
