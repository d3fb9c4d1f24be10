// Package history keeps an undo/redo stack of calculator inputs. A History
// belongs to a single calculator session and is not safe for concurrent use.
package history

import "github.com/iwvelando/finance-calculators/pkg/compound"

// DefaultLimit is the number of undo steps kept when New is given a
// non-positive limit.
const DefaultLimit = 100

// History is a bounded undo/redo stack with a current entry.
type History struct {
	past    []compound.Inputs
	current compound.Inputs
	future  []compound.Inputs
	limit   int
}

// New starts a history at initial.
func New(initial compound.Inputs, limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{current: initial, limit: limit}
}

// Current returns the active inputs.
func (h *History) Current() compound.Inputs {
	return h.current
}

// Push records next as the active inputs. Pushing a value equal to the
// current one is a no-op; any other push discards the redo entries.
// It reports whether the history changed.
func (h *History) Push(next compound.Inputs) bool {
	if next == h.current {
		return false
	}
	h.past = append(h.past, h.current)
	if len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
	h.current = next
	h.future = h.future[:0]
	return true
}

// Undo steps back one entry.
func (h *History) Undo() (compound.Inputs, bool) {
	if len(h.past) == 0 {
		return h.current, false
	}
	last := len(h.past) - 1
	h.future = append(h.future, h.current)
	h.current = h.past[last]
	h.past = h.past[:last]
	return h.current, true
}

// Redo re-applies the most recently undone entry.
func (h *History) Redo() (compound.Inputs, bool) {
	if len(h.future) == 0 {
		return h.current, false
	}
	last := len(h.future) - 1
	h.past = append(h.past, h.current)
	h.current = h.future[last]
	h.future = h.future[:last]
	return h.current, true
}

// Reset drops every undo and redo entry and makes initial current.
func (h *History) Reset(initial compound.Inputs) {
	h.past = nil
	h.future = nil
	h.current = initial
}

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Len is the number of undo steps available.
func (h *History) Len() int { return len(h.past) }
