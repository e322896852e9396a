package memory_test

import (
	"testing"

	"github.com/aliciamoraes/sana-agent/internal/adapters/storage/memory"
	"github.com/aliciamoraes/sana-agent/internal/domain"
)

func TestSummaryStoreAppendAndList(t *testing.T) {
	store := memory.NewSummaryStore()

	if err := store.AppendSummary(&domain.SummaryEntry{ID: "a", SessionID: "s1", Text: "first"}); err != nil {
		t.Fatalf("AppendSummary failed: %v", err)
	}
	if err := store.AppendSummary(&domain.SummaryEntry{ID: "b", SessionID: "s1", Text: "second"}); err != nil {
		t.Fatalf("AppendSummary failed: %v", err)
	}
	if err := store.AppendSummary(&domain.SummaryEntry{ID: "c", SessionID: "s2", Text: "other"}); err != nil {
		t.Fatalf("AppendSummary failed: %v", err)
	}

	entries, err := store.ListBySession("s1")
	if err != nil {
		t.Fatalf("ListBySession failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Text != "first" || entries[1].Text != "second" {
		t.Fatalf("entries = %+v", entries)
	}

	other, _ := store.ListBySession("s2")
	if len(other) != 1 {
		t.Fatalf("s2 entries = %d, want 1", len(other))
	}

	empty, err := store.ListBySession("missing")
	if err != nil {
		t.Fatalf("ListBySession failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("missing session returned %d entries", len(empty))
	}
}

func TestSummaryStoreNilEntry(t *testing.T) {
	store := memory.NewSummaryStore()
	if err := store.AppendSummary(nil); err != nil {
		t.Fatalf("AppendSummary(nil) = %v", err)
	}
}
