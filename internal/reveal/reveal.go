// Package reveal implements the timed-flicker random pick: while the
// session runs, every tick re-rolls a uniformly random candidate for
// display, and when the clock runs out one final independent draw becomes
// the committed result. The flicker is cosmetic and carries no information
// about the final pick.
package reveal

import (
	"math/rand"
	"time"

	"github.com/nvidela/duet/internal/domain"
)

const (
	// Duration is the total spin time before the pick commits
	Duration = 3 * time.Second

	// TickInterval is the cadence the driver should call Advance at
	TickInterval = 100 * time.Millisecond
)

// State is the session's position in its Idle -> Running -> Settled machine
type State int

const (
	StateIdle State = iota
	StateRunning
	StateSettled
)

// Session is the ephemeral state for one randomized pick. It is created
// when the user triggers "pick one" and discarded when the reveal UI is
// dismissed. The session is time-based, not tick-count based, so a missed
// or late tick cannot skew fairness.
type Session[T any] struct {
	pool     []T
	rng      *rand.Rand
	state    State
	start    time.Time
	fraction float64
	pick     T
	hasPick  bool
}

// NewSession creates a session over a copy of the candidate pool. Pools
// smaller than two items are rejected: there is nothing to randomize.
// A nil rng falls back to a time-seeded source.
func NewSession[T any](pool []T, rng *rand.Rand) (*Session[T], error) {
	if len(pool) < 2 {
		return nil, domain.ErrNotEnoughItems
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	candidates := make([]T, len(pool))
	copy(candidates, pool)
	return &Session[T]{pool: candidates, rng: rng}, nil
}

// Start begins the spin
func (s *Session[T]) Start(now time.Time) {
	if s.state != StateIdle {
		return
	}
	s.state = StateRunning
	s.start = now
}

// Advance moves the session forward to now. While running it re-rolls the
// displayed candidate; once elapsed time covers Duration it performs the
// final independent draw, settles, and pins the committed pick. Calls
// after settling return the committed pick unchanged.
func (s *Session[T]) Advance(now time.Time) (pick T, fraction float64, settled bool) {
	switch s.state {
	case StateIdle:
		var zero T
		return zero, 0, false
	case StateSettled:
		return s.pick, 1, true
	}

	elapsed := now.Sub(s.start)
	s.fraction = float64(elapsed) / float64(Duration)
	if s.fraction > 1 {
		s.fraction = 1
	}

	s.pick = s.pool[s.rng.Intn(len(s.pool))]
	s.hasPick = true

	if s.fraction >= 1 {
		// Final draw is independent of the last flicker frame
		s.pick = s.pool[s.rng.Intn(len(s.pool))]
		s.state = StateSettled
	}

	return s.pick, s.fraction, s.state == StateSettled
}

// Pick returns the currently displayed candidate, if any
func (s *Session[T]) Pick() (T, bool) {
	return s.pick, s.hasPick
}

// Fraction returns elapsed progress in 0..1
func (s *Session[T]) Fraction() float64 {
	return s.fraction
}

// Running reports whether the spin is still going
func (s *Session[T]) Running() bool {
	return s.state == StateRunning
}

// Settled reports whether the final pick has committed
func (s *Session[T]) Settled() bool {
	return s.state == StateSettled
}

// Cancel discards the session without committing a result. The driver
// stops its tick chain; nothing in the underlying collection changes.
func (s *Session[T]) Cancel() {
	s.state = StateIdle
	s.hasPick = false
	s.fraction = 0
}
