// Package notify keeps the queue of user-facing toast notifications.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a toast
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Toast struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Queue is safe for concurrent use. A listener, if set, is called
// synchronously for every toast that is actually added.
type Queue struct {
	mu       sync.Mutex
	toasts   []Toast
	listener func(Toast)
}

func NewQueue() *Queue {
	return &Queue{}
}

// OnAdd registers fn to be called for each new toast
func (q *Queue) OnAdd(fn func(Toast)) {
	q.mu.Lock()
	q.listener = fn
	q.mu.Unlock()
}

// Add appends a toast and returns its id
func (q *Queue) Add(level Level, message string) string {
	t, _ := q.add(level, message, false)
	return t.ID
}

// AddUnique adds a toast unless one with the same level and message is
// still queued. It reports whether a toast was added.
func (q *Queue) AddUnique(level Level, message string) bool {
	_, added := q.add(level, message, true)
	return added
}

func (q *Queue) add(level Level, message string, unique bool) (Toast, bool) {
	q.mu.Lock()
	if unique {
		for _, t := range q.toasts {
			if t.Level == level && t.Message == message {
				q.mu.Unlock()
				return t, false
			}
		}
	}
	t := Toast{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}
	q.toasts = append(q.toasts, t)
	listener := q.listener
	q.mu.Unlock()

	if listener != nil {
		listener(t)
	}
	return t, true
}

func (q *Queue) Info(message string)    { q.Add(LevelInfo, message) }
func (q *Queue) Success(message string) { q.Add(LevelSuccess, message) }
func (q *Queue) Warn(message string)    { q.AddUnique(LevelWarning, message) }
func (q *Queue) Error(message string)   { q.AddUnique(LevelError, message) }

// Remove dismisses a toast by id
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// List returns the queued toasts, oldest first
func (q *Queue) List() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Toast(nil), q.toasts...)
}

// Drain returns and removes every queued toast
func (q *Queue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.toasts
	q.toasts = nil
	return out
}

// Len returns the number of queued toasts
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.toasts)
}
