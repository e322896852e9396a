package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aliciamoraes/sana-agent/internal/app/onboarding"
	"github.com/aliciamoraes/sana-agent/internal/domain"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	subtitleStyle = lipgloss.NewStyle().Faint(true)
	promptStyle   = lipgloss.NewStyle().Bold(true)
	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	agentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("🧠 Sana — AI Therapist"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("A safe, non-judgmental space to listen, support, and guide."))
	b.WriteString("\n\n")

	if m.phase == phaseOnboarding {
		b.WriteString(m.viewOnboarding())
	} else {
		b.WriteString(m.viewChat())
	}

	if m.errText != "" {
		b.WriteString(errStyle.Render(m.errText))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewOnboarding() string {
	if !m.hasQuestion {
		return ""
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render(m.question.Prompt))
	b.WriteString("\n\n")

	switch m.question.Kind {
	case onboarding.KindChoice:
		for i, opt := range m.question.Options {
			cursor := "  "
			if i == m.choiceIdx {
				cursor = cursorStyle.Render("▸ ")
			}
			b.WriteString(cursor + opt + "\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ choose · enter submit · esc quit"))

	case onboarding.KindQuiz:
		for i, key := range domain.TraitKeys() {
			cursor := "  "
			if i == m.sliderIdx {
				cursor = cursorStyle.Render("▸ ")
			}
			b.WriteString(cursor + key.Question() + "\n")
			b.WriteString("    " + renderSlider(m.sliderVals[i]) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ trait · ←/→ adjust · enter submit all · esc quit"))

	default:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter submit · esc quit"))
	}

	b.WriteString("\n")
	return b.String()
}

// renderSlider draws one six-stop gauge, e.g. "███░░░ 40%".
func renderSlider(bucketIdx int) string {
	filled := bucketIdx + 1
	bar := strings.Repeat("█", filled) + strings.Repeat("░", len(domain.TraitBuckets)-filled)
	return fmt.Sprintf("%s %d%%", bar, domain.TraitBuckets[bucketIdx])
}

func (m Model) viewChat() string {
	var b strings.Builder

	for _, line := range m.lines {
		switch line.role {
		case domain.RoleUser:
			b.WriteString(userStyle.Render("You: "))
		default:
			b.WriteString(agentStyle.Render("Sana: "))
		}
		b.WriteString(line.text)
		b.WriteString("\n\n")
	}

	if m.waiting {
		b.WriteString(m.spin.View())
		b.WriteString(" Thinking...\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter send · type \"summary\" or \"end session\" for a wrap-up · esc quit"))
	b.WriteString("\n")
	return b.String()
}

// friendlyError rewrites validation errors into user-facing wording.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, onboarding.ErrEmptyAnswer):
		return "Please type an answer first."
	case errors.Is(err, onboarding.ErrInvalidDate):
		return "Please use the YYYY-MM-DD form, e.g. 1990-04-23."
	case errors.Is(err, onboarding.ErrDateOutOfRange):
		return "That date must be between 1900-01-01 and today."
	case errors.Is(err, onboarding.ErrInvalidOption):
		return "Please pick one of the offered options."
	default:
		return err.Error()
	}
}
