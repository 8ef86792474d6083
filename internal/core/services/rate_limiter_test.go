package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(limit int, window time.Duration) (*FixedWindowLimiter, *time.Time) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := &FixedWindowLimiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*windowEntry),
		now:     func() time.Time { return current },
	}
	return l, &current
}

func TestLimiterAllowsFirstAttempt(t *testing.T) {
	l, _ := newTestLimiter(1, time.Hour)

	allowed, retryAfter := l.Allow("1.2.3.4")
	assert.True(t, allowed)
	assert.Zero(t, retryAfter)
}

func TestLimiterRejectsWithinWindow(t *testing.T) {
	l, now := newTestLimiter(1, time.Hour)

	allowed, _ := l.Allow("1.2.3.4")
	assert.True(t, allowed)

	*now = now.Add(10 * time.Minute)
	allowed, retryAfter := l.Allow("1.2.3.4")
	assert.False(t, allowed)
	assert.Equal(t, 50*time.Minute, retryAfter)

	// A rejected attempt must not consume a slot or extend the window.
	*now = now.Add(10 * time.Minute)
	allowed, retryAfter = l.Allow("1.2.3.4")
	assert.False(t, allowed)
	assert.Equal(t, 40*time.Minute, retryAfter)
}

func TestLimiterResetsAfterWindow(t *testing.T) {
	l, now := newTestLimiter(1, time.Hour)

	allowed, _ := l.Allow("1.2.3.4")
	assert.True(t, allowed)

	*now = now.Add(time.Hour + time.Second)
	allowed, _ = l.Allow("1.2.3.4")
	assert.True(t, allowed)
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Hour)

	allowed, _ := l.Allow("1.2.3.4")
	assert.True(t, allowed)

	allowed, _ = l.Allow("5.6.7.8")
	assert.True(t, allowed)

	allowed, _ = l.Allow("1.2.3.4")
	assert.False(t, allowed)
}

func TestLimiterStopIsIdempotentAndKeepsAllowWorking(t *testing.T) {
	l := NewFixedWindowLimiter(1, time.Hour)

	l.Stop()
	l.Stop()

	allowed, _ := l.Allow("1.2.3.4")
	assert.True(t, allowed)

	allowed, _ = l.Allow("1.2.3.4")
	assert.False(t, allowed)
}

func TestLimiterConcurrentAttemptsTakeOneSlot(t *testing.T) {
	l, _ := newTestLimiter(1, time.Hour)

	const attempts = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := l.Allow("1.2.3.4"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, allowedCount)
}
