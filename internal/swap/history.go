package swap

import "sync"

// DefaultHistoryCapacity bounds how many completed swaps are retained.
const DefaultHistoryCapacity = 10

// History is a capacity-bounded stack of completed swaps. Pushing past
// capacity discards the oldest record so the newest ones are always kept.
// All operations are safe for concurrent use. There is no hidden global
// history: construct one per editing session and inject it where needed.
type History struct {
	mu       sync.Mutex
	records  []CompletedSwap
	capacity int
	onChange func()
}

// NewHistory returns a history with the default capacity.
func NewHistory() *History {
	return NewHistoryWithCapacity(DefaultHistoryCapacity)
}

// NewHistoryWithCapacity returns a history bounded to the given capacity.
// Capacities below 1 are treated as 1.
func NewHistoryWithCapacity(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{capacity: capacity}
}

// OnChange registers a callback fired after every mutation (push, pop,
// clear). Used by observers such as command-state or persistence layers.
// The callback runs outside the lock.
func (h *History) OnChange(fn func()) {
	h.mu.Lock()
	h.onChange = fn
	h.mu.Unlock()
}

// Push appends a record, evicting the oldest when at capacity.
func (h *History) Push(rec CompletedSwap) {
	h.mu.Lock()
	h.records = append(h.records, rec)
	if len(h.records) > h.capacity {
		h.records = h.records[len(h.records)-h.capacity:]
	}
	fn := h.onChange
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Pop removes and returns the most recent record, or nil when empty.
func (h *History) Pop() *CompletedSwap {
	h.mu.Lock()
	if len(h.records) == 0 {
		h.mu.Unlock()
		return nil
	}
	rec := h.records[len(h.records)-1]
	h.records = h.records[:len(h.records)-1]
	fn := h.onChange
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
	return &rec
}

// Peek returns the most recent record without removing it, or nil.
func (h *History) Peek() *CompletedSwap {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.records) == 0 {
		return nil
	}
	rec := h.records[len(h.records)-1]
	return &rec
}

// Clear discards all records.
func (h *History) Clear() {
	h.mu.Lock()
	h.records = nil
	fn := h.onChange
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Count returns the number of retained records.
func (h *History) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// CanUndo reports whether a record is available to undo.
func (h *History) CanUndo() bool {
	return h.Count() > 0
}

// NextDescription returns the description of the record UndoLast would act
// on, or "" when the history is empty. Intended for menu/prompt text.
func (h *History) NextDescription() string {
	rec := h.Peek()
	if rec == nil {
		return ""
	}
	return rec.Description
}

// Records returns a copy of the stack, oldest first.
func (h *History) Records() []CompletedSwap {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]CompletedSwap, len(h.records))
	copy(out, h.records)
	return out
}
