// Package usecases - history.go tracks recent questions per user.
package usecases

import (
	"strings"
	"sync"
)

// HistoryDepth is how many recent messages are kept per user.
const HistoryDepth = 3

// History keeps the last few messages per user session, feeding the
// summarize flow. Process-lifetime only; safe for concurrent use.
type History struct {
	mu     sync.Mutex
	byUser map[int64][]string
	depth  int
}

// NewHistory creates an empty history tracker.
func NewHistory() *History {
	return &History{
		byUser: make(map[int64][]string),
		depth:  HistoryDepth,
	}
}

// Add records a message for a user, discarding the oldest beyond the depth.
func (h *History) Add(userID int64, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msgs := append(h.byUser[userID], text)
	if len(msgs) > h.depth {
		msgs = msgs[len(msgs)-h.depth:]
	}
	h.byUser[userID] = msgs
}

// Last returns a copy of the user's recent messages, oldest first.
func (h *History) Last(userID int64) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	msgs := h.byUser[userID]
	out := make([]string, len(msgs))
	copy(out, msgs)
	return out
}

// SummaryInput joins the user's recent messages for the summarize prompt.
// Returns "" when the user has no history.
func (h *History) SummaryInput(userID int64) string {
	return strings.Join(h.Last(userID), "\n")
}
