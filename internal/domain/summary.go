package domain

// SummaryEntryID identifies a recorded session summary.
type SummaryEntryID string

// SummaryEntry is the structured wrap-up produced by a "summary" or
// "end session" turn: key points discussed plus actionable steps, as
// returned by the model.
type SummaryEntry struct {
	ID        SummaryEntryID
	SessionID SessionID
	Text      string
	CreatedAt Timestamp
}

// SummaryStore defines the minimum operations to keep session summaries
// for the lifetime of the process.
type SummaryStore interface {
	AppendSummary(entry *SummaryEntry) error
	ListBySession(sessionID SessionID) ([]*SummaryEntry, error)
}
