package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned without calling the guarded function while the
// breaker is open.
var ErrOpen = errors.New("resilience: circuit open")

// State of a breaker.
type State int

const (
	Closed State = iota
	HalfOpen
	Open
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case HalfOpen:
		return "half-open"
	case Open:
		return "open"
	}
	return "unknown"
}

// Settings configures a Breaker.
type Settings struct {
	// Failures is the run of consecutive failures that opens the breaker.
	Failures int
	// Cooldown is how long the breaker stays open before one probe call.
	Cooldown time.Duration
	// OnStateChange, when set, is called with the lock released.
	OnStateChange func(name string, from, to State)
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Breaker stops calling a failing remote after a run of failures and lets
// a single probe through once the cooldown elapses.
type Breaker struct {
	name     string
	settings Settings

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

func New(name string, settings Settings) *Breaker {
	if settings.Failures < 1 {
		settings.Failures = 5
	}
	if settings.Cooldown <= 0 {
		settings.Cooldown = 30 * time.Second
	}
	if settings.Clock == nil {
		settings.Clock = time.Now
	}
	return &Breaker{name: name, settings: settings}
}

func (b *Breaker) Name() string { return b.name }

// State reports the state, moving an expired open breaker to half-open.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refresh()
	return b.state
}

// Do calls fn unless the breaker is open. Context cancellation is not
// counted as a failure.
func (b *Breaker) Do(fn func() error) error {
	if err := b.admit(); err != nil {
		return err
	}
	err := fn()
	b.record(err)
	return err
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refresh()
	switch b.state {
	case Open:
		return ErrOpen
	case HalfOpen:
		if b.probing {
			return ErrOpen
		}
		b.probing = true
	}
	return nil
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	from := b.state
	b.probing = false
	switch {
	case err == nil:
		b.failures = 0
		b.state = Closed
	case isCancellation(err):
	default:
		b.failures++
		if b.state == HalfOpen || b.failures >= b.settings.Failures {
			b.state = Open
			b.openedAt = b.settings.Clock()
		}
	}
	to := b.state
	b.mu.Unlock()

	if from != to && b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, from, to)
	}
}

// refresh must be called with mu held.
func (b *Breaker) refresh() {
	if b.state == Open && b.settings.Clock().Sub(b.openedAt) >= b.settings.Cooldown {
		b.state = HalfOpen
		b.probing = false
	}
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
