package board

// DefaultHistoryLimit is the number of undo steps kept.
const DefaultHistoryLimit = 60

// History is a bounded undo stack. When full, the oldest entry is dropped.
type History struct {
	limit   int
	entries []State
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push stores a deep copy of s.
func (h *History) Push(s State) {
	h.entries = append(h.entries, s.Clone())
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append(h.entries[:0:0], h.entries[over:]...)
	}
}

// Pop removes and returns the most recent entry.
func (h *History) Pop() (State, bool) {
	if len(h.entries) == 0 {
		return State{}, false
	}

	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]

	return last, true
}

func (h *History) Len() int { return len(h.entries) }

func (h *History) Limit() int { return h.limit }

func (h *History) Clear() { h.entries = nil }
