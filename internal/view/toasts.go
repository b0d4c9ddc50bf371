package view

import (
	"sync"
	"time"
)

// Level is the severity of a message
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Toast is one message shown in the corner of the window
type Toast struct {
	Level   Level
	Text    string
	Created time.Time
}

// Toasts keeps the most recent messages for a limited time. It satisfies
// the session notifier interface.
type Toasts struct {
	mu       sync.Mutex
	items    []Toast
	lifetime time.Duration
	limit    int
	now      func() time.Time
}

// NewToasts keeps at most limit messages, each for lifetime
func NewToasts(lifetime time.Duration, limit int) *Toasts {
	return &Toasts{lifetime: lifetime, limit: limit, now: time.Now}
}

func (t *Toasts) Info(msg string)    { t.push(LevelInfo, msg) }
func (t *Toasts) Warning(msg string) { t.push(LevelWarning, msg) }
func (t *Toasts) Error(msg string)   { t.push(LevelError, msg) }

func (t *Toasts) push(level Level, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.items = append(t.items, Toast{Level: level, Text: msg, Created: t.now()})
	if len(t.items) > t.limit {
		t.items = t.items[len(t.items)-t.limit:]
	}
}

// Active returns the messages that have not expired, oldest first
func (t *Toasts) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	kept := t.items[:0]
	for _, item := range t.items {
		if now.Sub(item.Created) < t.lifetime {
			kept = append(kept, item)
		}
	}
	t.items = kept

	out := make([]Toast, len(kept))
	copy(out, kept)
	return out
}

// Fade returns the opacity of a toast, 1 until the last second of its life
func (t *Toasts) Fade(item Toast) float64 {
	left := t.lifetime - t.now().Sub(item.Created)
	if left >= time.Second {
		return 1
	}
	if left <= 0 {
		return 0
	}
	return left.Seconds()
}
