// Package ratelimit counts order submissions per client in fixed windows.
package ratelimit

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Decision describes the outcome of a single Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter admits at most a fixed number of events per key within a window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// NormalizeKey folds the key so that e-mail addresses differing only in case share a window.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

type window struct {
	start time.Time
	count int
}

// FixedWindow is a process-local Limiter.
type FixedWindow struct {
	max    int
	period time.Duration
	now    func() time.Time

	mu        sync.Mutex
	windows   map[string]*window
	lastPrune time.Time
}

// NewFixedWindow creates an in-memory limiter. A nil clock means time.Now.
func NewFixedWindow(max int, period time.Duration, now func() time.Time) *FixedWindow {
	if now == nil {
		now = time.Now
	}
	return &FixedWindow{
		max:     max,
		period:  period,
		now:     now,
		windows: make(map[string]*window),
	}
}

func (l *FixedWindow) Allow(_ context.Context, key string) (Decision, error) {
	key = NormalizeKey(key)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked(now)

	w, ok := l.windows[key]
	if !ok || l.elapsed(w, now) {
		l.windows[key] = &window{start: now, count: 1}
		return Decision{Allowed: true, Remaining: l.max - 1}, nil
	}

	if w.count >= l.max {
		// At the reset instant itself the window is still closed.
		return Decision{Allowed: false, RetryAfter: max(w.start.Add(l.period).Sub(now), time.Millisecond)}, nil
	}
	w.count++
	return Decision{Allowed: true, Remaining: l.max - w.count}, nil
}

// pruneLocked drops elapsed windows at most once per period.
func (l *FixedWindow) pruneLocked(now time.Time) {
	if now.Sub(l.lastPrune) < l.period {
		return
	}
	for key, w := range l.windows {
		if l.elapsed(w, now) {
			delete(l.windows, key)
		}
	}
	l.lastPrune = now
}

// elapsed reports whether now is strictly past the window's reset time.
func (l *FixedWindow) elapsed(w *window, now time.Time) bool {
	return now.After(w.start.Add(l.period))
}

// Len reports how many keys are currently tracked.
func (l *FixedWindow) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
