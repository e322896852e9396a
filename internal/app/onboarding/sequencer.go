package onboarding

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aliciamoraes/sana-agent/internal/domain"
)

// Kind selects the input control a question renders with.
type Kind int

const (
	KindText Kind = iota
	KindChoice
	KindDate
	KindQuiz
)

// Question is one onboarding step: the field it fills, the prompt shown to
// the user, and the control used to collect the answer.
type Question struct {
	Field   domain.FieldID
	Prompt  string
	Kind    Kind
	Options []string
}

var (
	ErrEmptyAnswer     = errors.New("answer must not be empty")
	ErrInvalidOption   = errors.New("answer is not one of the offered options")
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD form")
	ErrDateOutOfRange  = errors.New("date must be between 1900-01-01 and today")
	ErrAlreadyAnswered = errors.New("field is already answered")
	ErrUnknownField    = errors.New("unknown onboarding field")
	ErrInvalidPercent  = errors.New("trait answer must be one of 0/20/40/60/80/100")
)

const birthdayLayout = "2006-01-02"

var minBirthday = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Sequencer walks a profile through the fixed question order for one
// variant. It is the only writer of Profile fields.
type Sequencer struct {
	variant domain.Variant
	now     func() time.Time
}

func NewSequencer(variant domain.Variant) *Sequencer {
	return &Sequencer{
		variant: variant,
		now:     time.Now,
	}
}

// Questions returns the question table in declaration order. The quiz
// question is present only for quiz-inclusive variants.
func (s *Sequencer) Questions() []Question {
	qs := []Question{
		{
			Field:  domain.FieldName,
			Prompt: "Hi! What's your name?",
			Kind:   KindText,
		},
		{
			Field:   domain.FieldGender,
			Prompt:  "How do you identify?",
			Kind:    KindChoice,
			Options: []string{"Male", "Female", "Non-binary", "Prefer not to say"},
		},
		{
			Field:  domain.FieldBirthday,
			Prompt: "When is your birthday?",
			Kind:   KindDate,
		},
		{
			Field:  domain.FieldGoal,
			Prompt: "What's your main goal with therapy right now?",
			Kind:   KindChoice,
			Options: []string{
				"Reduce stress",
				"Manage anxiety",
				"Improve self-confidence",
				"Better self-awareness",
				"Other",
			},
		},
	}

	if s.variant.IncludesQuiz() {
		qs = append(qs, Question{
			Field:  domain.FieldPersonality,
			Prompt: "A quick personality check-in. Move each slider to where you land.",
			Kind:   KindQuiz,
		})
	}

	return qs
}

// Next returns the first unanswered field in declaration order, or
// domain.FieldNone once the profile is complete for this variant.
func (s *Sequencer) Next(p domain.Profile) domain.FieldID {
	for _, q := range s.Questions() {
		if !p.IsSet(q.Field) {
			return q.Field
		}
	}
	return domain.FieldNone
}

// Complete reports whether every question for this variant is answered.
func (s *Sequencer) Complete(p domain.Profile) bool {
	return s.Next(p) == domain.FieldNone
}

// Answer validates and commits a single text, choice, or date answer.
// Quiz answers go through AnswerQuiz instead.
func (s *Sequencer) Answer(p *domain.Profile, field domain.FieldID, value string) error {
	q, err := s.question(field)
	if err != nil {
		return err
	}
	if p.IsSet(field) {
		return ErrAlreadyAnswered
	}

	switch q.Kind {
	case KindText:
		return s.answerText(p, field, value)
	case KindChoice:
		return s.answerChoice(p, q, value)
	case KindDate:
		return s.answerDate(p, value)
	default:
		return fmt.Errorf("field %s: %w", field, ErrUnknownField)
	}
}

// AnswerQuiz commits all five trait answers atomically: either every trait
// is present with a valid bucket and the whole mapping is stored, or the
// profile is left untouched.
func (s *Sequencer) AnswerQuiz(p *domain.Profile, answers map[domain.TraitKey]int) error {
	if !s.variant.IncludesQuiz() {
		return fmt.Errorf("variant %s has no quiz: %w", s.variant, ErrUnknownField)
	}
	if p.IsSet(domain.FieldPersonality) {
		return ErrAlreadyAnswered
	}

	committed := make(map[domain.TraitKey]int, len(domain.TraitKeys()))
	for _, key := range domain.TraitKeys() {
		pct, ok := answers[key]
		if !ok {
			return fmt.Errorf("trait %s missing: %w", key, ErrInvalidPercent)
		}
		if !domain.ValidTraitPercent(pct) {
			return fmt.Errorf("trait %s = %d: %w", key, pct, ErrInvalidPercent)
		}
		committed[key] = pct
	}

	p.Personality = committed
	return nil
}

func (s *Sequencer) answerText(p *domain.Profile, field domain.FieldID, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ErrEmptyAnswer
	}
	s.store(p, field, trimmed)
	return nil
}

func (s *Sequencer) answerChoice(p *domain.Profile, q Question, value string) error {
	for _, opt := range q.Options {
		if value == opt {
			s.store(p, q.Field, opt)
			return nil
		}
	}
	return fmt.Errorf("%q: %w", value, ErrInvalidOption)
}

func (s *Sequencer) answerDate(p *domain.Profile, value string) error {
	d, err := time.Parse(birthdayLayout, strings.TrimSpace(value))
	if err != nil {
		return ErrInvalidDate
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	if d.Before(minBirthday) || d.After(today) {
		return ErrDateOutOfRange
	}

	s.store(p, domain.FieldBirthday, d.Format(birthdayLayout))
	return nil
}

func (s *Sequencer) store(p *domain.Profile, field domain.FieldID, value string) {
	switch field {
	case domain.FieldName:
		p.Name = value
	case domain.FieldGender:
		p.Gender = value
	case domain.FieldBirthday:
		p.Birthday = value
	case domain.FieldGoal:
		p.Goal = value
	}
}

func (s *Sequencer) question(field domain.FieldID) (Question, error) {
	for _, q := range s.Questions() {
		if q.Field == field {
			return q, nil
		}
	}
	return Question{}, fmt.Errorf("field %s: %w", field, ErrUnknownField)
}
