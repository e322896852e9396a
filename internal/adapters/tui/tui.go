// Package tui is the terminal front-end: a bubbletea event loop that
// renders the onboarding controls, the chat history, and the input box.
// All session state lives in the conversation service's session object;
// the model only keeps what rendering needs.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aliciamoraes/sana-agent/internal/app/conversation"
	"github.com/aliciamoraes/sana-agent/internal/app/onboarding"
	"github.com/aliciamoraes/sana-agent/internal/domain"
	"github.com/aliciamoraes/sana-agent/internal/observability"
)

type phase int

const (
	phaseOnboarding phase = iota
	phaseChat
)

// defaultBucketIdx starts each slider at 40%.
const defaultBucketIdx = 2

type chatLine struct {
	role domain.Role
	text string
}

// replyMsg carries the dispatcher's result back into the event loop.
type replyMsg struct {
	message *domain.Message
	err     error
}

type Model struct {
	svc     *conversation.Service
	session *domain.Session
	ctx     context.Context

	phase       phase
	question    onboarding.Question
	hasQuestion bool

	input textinput.Model
	spin  spinner.Model

	choiceIdx  int
	sliderIdx  int
	sliderVals []int // bucket index per trait, in domain.TraitKeys order

	lines   []chatLine
	pending string // transient slot; holds at most one in-flight message
	waiting bool
	errText string

	width    int
	quitting bool
}

// Run drives one full session and blocks until the user quits. The session
// is returned so the caller can read recorded summaries afterwards.
func Run(svc *conversation.Service, variant domain.Variant) (*domain.Session, error) {
	ctx := context.Background()
	session := svc.StartSession(ctx, variant)
	ctx = observability.WithSessionID(ctx, string(session.ID))

	m := newModel(ctx, svc, session)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return session, err
	}
	return session, nil
}

func newModel(ctx context.Context, svc *conversation.Service, session *domain.Session) Model {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	sliders := make([]int, len(domain.TraitKeys()))
	for i := range sliders {
		sliders[i] = defaultBucketIdx
	}

	m := Model{
		svc:        svc,
		session:    session,
		ctx:        ctx,
		phase:      phaseOnboarding,
		input:      ti,
		spin:       sp,
		sliderVals: sliders,
	}
	m.loadNextQuestion()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case replyMsg:
		m.waiting = false
		m.pending = ""
		if msg.err != nil {
			// Dispatcher preconditions only; completion failures arrive as
			// ordinary error-marked assistant messages.
			m.errText = msg.err.Error()
			return m, nil
		}
		m.lines = append(m.lines, chatLine{role: domain.RoleAssistant, text: msg.message.Text})
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		if m.phase == phaseOnboarding {
			return m.updateOnboarding(msg)
		}
		return m.updateChat(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateOnboarding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.question.Kind {
	case onboarding.KindChoice:
		switch msg.String() {
		case "up", "k":
			if m.choiceIdx > 0 {
				m.choiceIdx--
			}
		case "down", "j":
			if m.choiceIdx < len(m.question.Options)-1 {
				m.choiceIdx++
			}
		case "enter":
			return m.submitAnswer(m.question.Options[m.choiceIdx])
		}
		return m, nil

	case onboarding.KindQuiz:
		switch msg.String() {
		case "up", "k":
			if m.sliderIdx > 0 {
				m.sliderIdx--
			}
		case "down", "j":
			if m.sliderIdx < len(m.sliderVals)-1 {
				m.sliderIdx++
			}
		case "left", "h":
			if m.sliderVals[m.sliderIdx] > 0 {
				m.sliderVals[m.sliderIdx]--
			}
		case "right", "l":
			if m.sliderVals[m.sliderIdx] < len(domain.TraitBuckets)-1 {
				m.sliderVals[m.sliderIdx]++
			}
		case "enter":
			return m.submitQuiz()
		}
		return m, nil

	default: // text and date share the text box
		if msg.String() == "enter" {
			return m.submitAnswer(m.input.Value())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) submitAnswer(value string) (tea.Model, tea.Cmd) {
	if err := m.svc.SubmitAnswer(m.ctx, m.session, m.question.Field, value); err != nil {
		m.errText = friendlyError(err)
		return m, nil
	}
	m.errText = ""
	m.input.Reset()
	m.loadNextQuestion()
	return m, nil
}

func (m Model) submitQuiz() (tea.Model, tea.Cmd) {
	answers := make(map[domain.TraitKey]int, len(m.sliderVals))
	for i, key := range domain.TraitKeys() {
		answers[key] = domain.TraitBuckets[m.sliderVals[i]]
	}

	if err := m.svc.SubmitQuiz(m.ctx, m.session, answers); err != nil {
		m.errText = friendlyError(err)
		return m, nil
	}
	m.errText = ""
	m.loadNextQuestion()
	return m, nil
}

// loadNextQuestion re-runs the next-incomplete-field check and, once
// onboarding completes, switches to the chat phase.
func (m *Model) loadNextQuestion() {
	q, ok := m.svc.NextQuestion(m.session)
	if ok {
		m.question = q
		m.hasQuestion = true
		m.choiceIdx = 0
		switch q.Kind {
		case onboarding.KindDate:
			m.input.Placeholder = "YYYY-MM-DD"
		case onboarding.KindText:
			m.input.Placeholder = "Type your answer..."
		}
		return
	}

	m.hasQuestion = false
	m.phase = phaseChat
	m.input.Placeholder = "Type your message here..."

	// Seed the render list from the transcript; the intro message was
	// injected when the profile completed. Element 0 (system) is hidden.
	msgs := m.session.Transcript.Messages()
	for _, msg := range msgs[1:] {
		m.lines = append(m.lines, chatLine{role: msg.Role, text: msg.Text})
	}
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		if m.waiting {
			// The slot holds one message at a time; drop extra submits.
			return m, nil
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}

		m.lines = append(m.lines, chatLine{role: domain.RoleUser, text: text})
		m.pending = text
		m.waiting = true
		m.errText = ""
		m.input.Reset()

		return m, tea.Batch(m.spin.Tick, m.dispatch(text))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// dispatch runs the blocking completion call off the event loop and feeds
// the reply back in as a message.
func (m Model) dispatch(text string) tea.Cmd {
	svc, session, ctx := m.svc, m.session, m.ctx
	return func() tea.Msg {
		reply, err := svc.SendMessage(ctx, session, text)
		return replyMsg{message: reply, err: err}
	}
}
