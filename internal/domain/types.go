package domain

import "time"

type SessionID string
type MessageID string

type Role string

const (
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Variant selects one of the persona presets. They differ in preamble
// wording; VariantInsight additionally runs the personality quiz.
type Variant string

const (
	VariantClassic Variant = "classic" // supportive listener, therapy-education focus
	VariantGentle  Variant = "gentle"  // softer wording, slower pacing
	VariantInsight Variant = "insight" // classic plus the five-trait quiz
)

// IncludesQuiz reports whether onboarding for this variant asks the
// personality quiz.
func (v Variant) IncludesQuiz() bool {
	return v == VariantInsight
}

// TraitKey identifies one personality quiz trait.
type TraitKey string

const (
	TraitEnergy         TraitKey = "energy"
	TraitDecisionStyle  TraitKey = "decision_style"
	TraitFocus          TraitKey = "focus"
	TraitStructure      TraitKey = "structure"
	TraitStressResponse TraitKey = "stress_response"
)

// TraitKeys returns the quiz traits in their fixed declaration order.
func TraitKeys() []TraitKey {
	return []TraitKey{
		TraitEnergy,
		TraitDecisionStyle,
		TraitFocus,
		TraitStructure,
		TraitStressResponse,
	}
}

// Question returns the slider label shown for this trait. The same text is
// reflected into the system prompt next to the chosen percentage.
func (k TraitKey) Question() string {
	switch k {
	case TraitEnergy:
		return "How much do social settings energize you?"
	case TraitDecisionStyle:
		return "How much do you lean on logic over gut feeling when deciding?"
	case TraitFocus:
		return "How much do you focus on the big picture over details?"
	case TraitStructure:
		return "How much do you prefer planned structure over spontaneity?"
	case TraitStressResponse:
		return "How calm do you usually stay under pressure?"
	default:
		return string(k)
	}
}

// TraitBuckets are the only admissible quiz answers, in percent.
var TraitBuckets = []int{0, 20, 40, 60, 80, 100}

// ValidTraitPercent reports whether p is one of the six buckets.
func ValidTraitPercent(p int) bool {
	for _, b := range TraitBuckets {
		if p == b {
			return true
		}
	}
	return false
}

type Timestamp = time.Time
