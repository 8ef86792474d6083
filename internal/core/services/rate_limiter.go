package services

import (
	"sync"
	"time"
)

type windowEntry struct {
	count    int
	resetsAt time.Time
}

// FixedWindowLimiter caps accepted attempts per key within a fixed
// window, held in process memory. Good enough for a single instance;
// a multi-instance deployment needs a shared keyed store instead.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*windowEntry
	now     func() time.Time
	done    chan struct{}
	stop    sync.Once
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	l := &FixedWindowLimiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*windowEntry),
		now:     time.Now,
		done:    make(chan struct{}),
	}

	go l.cleanupExpired()

	return l
}

// Allow reports whether the caller identified by key may proceed, and
// consumes a slot if so. The read-check-write on one key is a single
// critical section; two concurrent calls can never both take the last
// slot. An over-limit call consumes nothing and reports how long until
// the window resets.
func (l *FixedWindowLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.After(e.resetsAt) {
		l.entries[key] = &windowEntry{count: 1, resetsAt: now.Add(l.window)}
		return true, 0
	}

	if e.count >= l.limit {
		return false, e.resetsAt.Sub(now)
	}

	e.count++
	return true, 0
}

// Stop terminates the background cleanup goroutine. Safe to call more
// than once; Allow keeps working afterwards.
func (l *FixedWindowLimiter) Stop() {
	l.stop.Do(func() { close(l.done) })
}

func (l *FixedWindowLimiter) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.mu.Lock()
			now := l.now()
			for key, e := range l.entries {
				if now.After(e.resetsAt) {
					delete(l.entries, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
