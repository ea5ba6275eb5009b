package clock

import (
	"sync"
	"time"
)

// Clock abstracts time.Now so lifecycle timestamps are deterministic in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now().UTC() }

// Fixed is a manually advanced Clock. Safe for concurrent use.
type Fixed struct {
	mu      sync.Mutex
	current time.Time
}

func NewFixed(t time.Time) *Fixed { return &Fixed{current: t.UTC()} }

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.current = f.current.Add(d)
	f.mu.Unlock()
}
