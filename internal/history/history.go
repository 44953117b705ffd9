// Package history implements bounded linear undo/redo over state snapshots.
package history

// History keeps two bounded stacks of snapshots. Callers must push
// independent copies; History never copies values itself.
type History[T any] struct {
	limit  int
	past   []T
	future []T
}

// New returns a History keeping at most limit entries per direction
func New[T any](limit int) *History[T] {
	if limit < 1 {
		limit = 1
	}
	return &History[T]{limit: limit}
}

// Push records the state before an edit. The oldest entry is evicted once
// the limit is exceeded, and the redo buffer is discarded.
func (h *History[T]) Push(state T) {
	h.past = appendBounded(h.past, state, h.limit)
	clear(h.future)
	h.future = h.future[:0]
}

// Undo returns the previous state and stores current for redo.
// It reports false when there is nothing to undo.
func (h *History[T]) Undo(current T) (T, bool) {
	var zero T
	if len(h.past) == 0 {
		return zero, false
	}
	prev := h.past[len(h.past)-1]
	h.past[len(h.past)-1] = zero
	h.past = h.past[:len(h.past)-1]
	h.future = appendBounded(h.future, current, h.limit)
	return prev, true
}

// Redo returns the next state and stores current for undo.
// It reports false when there is nothing to redo.
func (h *History[T]) Redo(current T) (T, bool) {
	var zero T
	if len(h.future) == 0 {
		return zero, false
	}
	next := h.future[len(h.future)-1]
	h.future[len(h.future)-1] = zero
	h.future = h.future[:len(h.future)-1]
	h.past = appendBounded(h.past, current, h.limit)
	return next, true
}

// Reset empties both buffers
func (h *History[T]) Reset() {
	h.past = nil
	h.future = nil
}

func (h *History[T]) CanUndo() bool { return len(h.past) > 0 }
func (h *History[T]) CanRedo() bool { return len(h.future) > 0 }

// Len returns the number of undo and redo entries
func (h *History[T]) Len() (past, future int) {
	return len(h.past), len(h.future)
}

func appendBounded[T any](stack []T, v T, limit int) []T {
	stack = append(stack, v)
	if over := len(stack) - limit; over > 0 {
		var zero T
		for i := 0; i < over; i++ {
			stack[i] = zero
		}
		stack = append(stack[:0], stack[over:]...)
	}
	return stack
}
