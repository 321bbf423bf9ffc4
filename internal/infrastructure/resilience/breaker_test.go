package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRemote = errors.New("remote down")

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newBreaker(clock *fakeClock, n int) *Breaker {
	return New("schema", Settings{Failures: n, Cooldown: time.Minute, Clock: clock.Now})
}

func fail() error { return errRemote }

func succeed() error { return nil }

func TestBreakerTransitions(t *testing.T) {
	tests := []struct {
		name  string
		calls []func() error
		want  State
	}{
		{name: "successes keep it closed", calls: []func() error{succeed, succeed}, want: Closed},
		{name: "failures below threshold", calls: []func() error{fail, fail}, want: Closed},
		{name: "success resets the run", calls: []func() error{fail, fail, succeed, fail, fail}, want: Closed},
		{name: "threshold opens", calls: []func() error{fail, fail, fail}, want: Open},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBreaker(&fakeClock{now: time.Unix(0, 0)}, 3)
			for _, call := range tt.calls {
				_ = b.Do(call)
			}
			assert.Equal(t, tt.want, b.State())
		})
	}
}

func TestBreakerFailsFastWhenOpen(t *testing.T) {
	b := newBreaker(&fakeClock{now: time.Unix(0, 0)}, 1)
	require.ErrorIs(t, b.Do(fail), errRemote)

	called := false
	err := b.Do(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestBreakerProbeAfterCooldown(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}

	t.Run("probe success closes", func(t *testing.T) {
		b := newBreaker(clock, 1)
		_ = b.Do(fail)
		clock.Advance(time.Minute)
		assert.Equal(t, HalfOpen, b.State())
		require.NoError(t, b.Do(succeed))
		assert.Equal(t, Closed, b.State())
	})

	t.Run("probe failure reopens", func(t *testing.T) {
		b := newBreaker(clock, 3)
		for range 3 {
			_ = b.Do(fail)
		}
		clock.Advance(time.Minute)
		assert.ErrorIs(t, b.Do(fail), errRemote)
		assert.Equal(t, Open, b.State())
	})
}

func TestBreakerIgnoresCancellation(t *testing.T) {
	b := newBreaker(&fakeClock{now: time.Unix(0, 0)}, 1)
	err := b.Do(func() error { return context.Canceled })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Closed, b.State())
}

func TestBreakerReportsStateChanges(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	var changes []string
	b := New("schema", Settings{
		Failures: 1,
		Cooldown: time.Second,
		Clock:    clock.Now,
		OnStateChange: func(name string, from, to State) {
			changes = append(changes, name+":"+from.String()+"->"+to.String())
		},
	})

	_ = b.Do(fail)
	clock.Advance(time.Second)
	_ = b.Do(succeed)
	assert.Equal(t, []string{"schema:closed->open", "schema:half-open->closed"}, changes)
}
