// Package prompt assembles the system instruction sent as transcript
// element 0. Build is pure: the same variant and profile always produce the
// same text, because the dispatcher re-runs it on every turn and overwrites
// the system entry rather than appending.
package prompt

import (
	"fmt"
	"strings"

	"github.com/aliciamoraes/sana-agent/internal/domain"
)

const classicPreamble = `You are a warm, empathetic, and supportive AI therapist. ` +
	`You specialise in supportive listening first, then gentle, educational guidance. ` +
	`You know and can clearly explain different counselling approaches with real-life examples: ` +
	`Cognitive Behavioral Therapy (CBT), Person-Centered, Psychodynamic, Solution-Focused, Gestalt, Narrative, and Integrative. ` +
	`When relevant, you decide and explain which therapy may be beneficial based on the user's situation.

Conversation rules:
- Always validate the user's feelings before giving advice.
- Provide gentle, non-judgmental reflection.
- If asked about therapy methods, give clear examples and explain benefits.
- If user asks 'which therapy fits me', walk them through how counsellors decide this in real-world practice.
- For complex emotional challenges, break advice into small steps.
- If severe distress is expressed, advise them to contact a crisis hotline immediately.
- If user types 'summary' or 'end session', summarise session key points and give actionable suggestions.
`

const gentlePreamble = `You are a calm, patient, and deeply supportive AI therapist. ` +
	`Your first job is always to listen; advice comes later, in small and optional doses. ` +
	`You are familiar with the main counselling approaches (CBT, Person-Centered, Psychodynamic, ` +
	`Solution-Focused, Gestalt, Narrative, Integrative) and can explain them in plain, unhurried language ` +
	`when the user asks.

Conversation rules:
- Reflect and validate the user's feelings before anything else.
- Keep replies short and soft; never push.
- Offer at most one gentle suggestion per reply, framed as an invitation.
- If severe distress is expressed, advise them to contact a crisis hotline immediately.
- If user types 'summary' or 'end session', summarise session key points and give actionable suggestions.
`

const insightTraitsHeading = `The user completed a short personality check-in. ` +
	`Use these answers to adapt your tone and suggestions:`

// Build maps a profile to the full system instruction for the given
// variant. Only set fields appear in the output.
func Build(variant domain.Variant, p domain.Profile) string {
	var b strings.Builder
	b.WriteString(preamble(variant))

	var facts []string
	if p.Name != "" {
		facts = append(facts, fmt.Sprintf("The user's name is %s.", p.Name))
	}
	if p.Gender != "" {
		facts = append(facts, fmt.Sprintf("The user identifies as %s.", p.Gender))
	}
	if p.Birthday != "" {
		facts = append(facts, fmt.Sprintf("The user was born on %s.", p.Birthday))
	}
	if p.Goal != "" {
		facts = append(facts, fmt.Sprintf("Their main goal for therapy is: %s.", p.Goal))
	}

	if len(facts) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(facts, " "))
		b.WriteString("\n")
	}

	if variant.IncludesQuiz() && p.Personality != nil {
		b.WriteString("\n")
		b.WriteString(insightTraitsHeading)
		b.WriteString("\n")
		for _, key := range domain.TraitKeys() {
			b.WriteString(fmt.Sprintf("- %s %d%%\n", key.Question(), p.Personality[key]))
		}
	}

	return b.String()
}

func preamble(variant domain.Variant) string {
	switch variant {
	case domain.VariantGentle:
		return gentlePreamble
	default:
		// classic and insight share the same behavioral preamble.
		return classicPreamble
	}
}
