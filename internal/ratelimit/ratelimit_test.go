package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// newTestLimiter retourne un limiter avec une horloge contrôlable
func newTestLimiter(start time.Time) (*Limiter, *time.Time) {
	current := start
	l := NewLimiter()
	l.now = func() time.Time { return current }
	return l, &current
}

func TestIsLimitedAfterMaxMessages(t *testing.T) {
	l, _ := newTestLimiter(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	for i := 0; i < DefaultMaxMessages; i++ {
		assert.False(t, l.IsLimited("user-1"), "message %d should pass", i+1)
	}

	assert.True(t, l.IsLimited("user-1"))
}

func TestWindowExpiry(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l, clock := newTestLimiter(start)

	for i := 0; i < DefaultMaxMessages; i++ {
		l.IsLimited("user-1")
	}
	assert.True(t, l.IsLimited("user-1"))

	// après la fenêtre, les entrées expirent
	*clock = start.Add(DefaultWindow + time.Second)
	assert.False(t, l.IsLimited("user-1"))
}

func TestLimitedCallNotRecorded(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l, clock := newTestLimiter(start)

	for i := 0; i < DefaultMaxMessages; i++ {
		l.IsLimited("user-1")
	}

	// les appels refusés ne prolongent pas la fenêtre
	for i := 0; i < 10; i++ {
		*clock = (*clock).Add(time.Second)
		assert.True(t, l.IsLimited("user-1"))
	}

	*clock = start.Add(DefaultWindow + time.Second)
	assert.False(t, l.IsLimited("user-1"))
}

func TestUsersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	for i := 0; i < DefaultMaxMessages; i++ {
		l.IsLimited("user-1")
	}

	assert.True(t, l.IsLimited("user-1"))
	assert.False(t, l.IsLimited("user-2"))
}

func TestCustomLimits(t *testing.T) {
	l, _ := newTestLimiter(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	assert.False(t, l.IsLimitedWithin("user-1", 2, 30*time.Second))
	assert.False(t, l.IsLimitedWithin("user-1", 2, 30*time.Second))
	assert.True(t, l.IsLimitedWithin("user-1", 2, 30*time.Second))
}

func TestReset(t *testing.T) {
	l, _ := newTestLimiter(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	for i := 0; i < DefaultMaxMessages; i++ {
		l.IsLimited("user-1")
	}
	assert.True(t, l.IsLimited("user-1"))

	l.Reset("user-1")
	assert.False(t, l.IsLimited("user-1"))
}
