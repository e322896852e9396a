package domain

// Message represents one entry in the session transcript.
type Message struct {
	ID        MessageID
	Role      Role
	Text      string
	CreatedAt Timestamp
}

// Transcript is the ordered conversation log. Element 0 is always the
// current system prompt; SetSystemPrompt overwrites it in place. Everything
// after it is append-only.
type Transcript struct {
	msgs []Message
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

// SetSystemPrompt overwrites the system entry, creating it when the
// transcript is still empty. The system entry never moves from index 0.
func (t *Transcript) SetSystemPrompt(msg Message) {
	msg.Role = RoleSystem
	if len(t.msgs) == 0 {
		t.msgs = append(t.msgs, msg)
		return
	}
	t.msgs[0] = msg
}

// Append adds a user or assistant entry after the system prompt.
func (t *Transcript) Append(msg Message) {
	t.msgs = append(t.msgs, msg)
}

// Messages returns the full log, system prompt first. The returned slice
// is the authoritative log; callers must not reorder it.
func (t *Transcript) Messages() []Message {
	return t.msgs
}

// SystemPrompt returns the current system instruction text, or "" when the
// transcript has not been seeded yet.
func (t *Transcript) SystemPrompt() string {
	if len(t.msgs) == 0 {
		return ""
	}
	return t.msgs[0].Text
}

func (t *Transcript) Len() int {
	return len(t.msgs)
}

// Session is the explicit per-session context object: everything mutable
// about one conversation lives here, never in package globals.
type Session struct {
	ID      SessionID
	Variant Variant

	Profile    Profile
	Transcript *Transcript

	// IntroShown guards the one-time personalized intro message.
	IntroShown bool

	CreatedAt Timestamp
	UpdatedAt Timestamp
}
