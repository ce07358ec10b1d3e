package usecases

import (
	"fmt"
	"testing"
)

func TestHistory_KeepsLastMessages(t *testing.T) {
	h := NewHistory()
	for i := 1; i <= 5; i++ {
		h.Add(1, fmt.Sprintf("q%d", i))
	}

	got := h.Last(1)
	if len(got) != HistoryDepth {
		t.Fatalf("expected %d messages, got %d", HistoryDepth, len(got))
	}
	want := []string{"q3", "q4", "q5"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHistory_PerUserIsolation(t *testing.T) {
	h := NewHistory()
	h.Add(1, "from user one")
	h.Add(2, "from user two")

	if got := h.Last(1); len(got) != 1 || got[0] != "from user one" {
		t.Errorf("user 1 history wrong: %v", got)
	}
	if got := h.Last(2); len(got) != 1 || got[0] != "from user two" {
		t.Errorf("user 2 history wrong: %v", got)
	}
}

func TestHistory_LastReturnsCopy(t *testing.T) {
	h := NewHistory()
	h.Add(1, "original")

	got := h.Last(1)
	got[0] = "mutated"

	if h.Last(1)[0] != "original" {
		t.Error("mutating the returned slice must not affect stored history")
	}
}

func TestHistory_SummaryInput(t *testing.T) {
	h := NewHistory()

	if h.SummaryInput(1) != "" {
		t.Error("no history should yield an empty summary input")
	}

	h.Add(1, "first")
	h.Add(1, "second")
	if got := h.SummaryInput(1); got != "first\nsecond" {
		t.Errorf("SummaryInput = %q", got)
	}
}
