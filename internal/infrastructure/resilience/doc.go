// Package resilience guards calls to remote schema hosts with a circuit
// breaker: after a run of consecutive failures further calls fail fast with
// ErrOpen until a cooldown passes, then one probe decides whether the
// breaker closes again.
package resilience
