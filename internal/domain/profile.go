package domain

// FieldID names one onboarding field, in the wire spelling used by the
// onboarding questions.
type FieldID string

const (
	FieldName        FieldID = "name"
	FieldGender      FieldID = "gender"
	FieldBirthday    FieldID = "birthday"
	FieldGoal        FieldID = "goal"
	FieldPersonality FieldID = "personality_profile"

	// FieldNone is the sentinel returned once every field is answered.
	FieldNone FieldID = ""
)

// Profile holds the onboarding answers for one session. A field is either
// unset (zero value) or holds a validated answer; the onboarding sequencer
// is the only writer and sets each field exactly once.
type Profile struct {
	Name     string
	Gender   string
	Birthday string // ISO YYYY-MM-DD
	Goal     string

	// Personality maps each trait to one of the six percent buckets.
	// nil until the quiz is committed; the whole map is set atomically.
	Personality map[TraitKey]int
}

// IsSet reports whether the given field already holds an answer.
func (p Profile) IsSet(field FieldID) bool {
	switch field {
	case FieldName:
		return p.Name != ""
	case FieldGender:
		return p.Gender != ""
	case FieldBirthday:
		return p.Birthday != ""
	case FieldGoal:
		return p.Goal != ""
	case FieldPersonality:
		return p.Personality != nil
	default:
		return false
	}
}
