package reveal

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/nvidela/duet/internal/domain"
)

func TestNewSessionRejectsSmallPools(t *testing.T) {
	for _, pool := range [][]string{nil, {}, {"only"}} {
		if _, err := NewSession(pool, nil); !errors.Is(err, domain.ErrNotEnoughItems) {
			t.Fatalf("NewSession(%v) err = %v, want ErrNotEnoughItems", pool, err)
		}
	}
	if _, err := NewSession([]string{"a", "b"}, nil); err != nil {
		t.Fatalf("NewSession with two items failed: %v", err)
	}
}

func TestSessionCopiesPool(t *testing.T) {
	pool := []string{"a", "b", "c"}
	s, err := NewSession(pool, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	pool[0] = "mutated"

	start := time.Now()
	s.Start(start)
	pick, _, _ := s.Advance(start.Add(Duration))
	if pick == "mutated" {
		t.Fatal("session aliased the caller's pool")
	}
}

func TestAdvanceLifecycle(t *testing.T) {
	s, err := NewSession([]string{"a", "b", "c"}, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}

	// Idle sessions do nothing
	if _, fraction, settled := s.Advance(time.Now()); fraction != 0 || settled {
		t.Fatalf("Advance before Start = %v, %v, want 0, false", fraction, settled)
	}

	start := time.Now()
	s.Start(start)

	_, fraction, settled := s.Advance(start.Add(Duration / 2))
	if settled {
		t.Fatal("settled at half time")
	}
	if fraction < 0.4 || fraction > 0.6 {
		t.Fatalf("fraction at half time = %v, want ~0.5", fraction)
	}
	if !s.Running() {
		t.Fatal("session not running mid-spin")
	}

	pick, fraction, settled := s.Advance(start.Add(Duration + time.Millisecond))
	if !settled || fraction != 1 {
		t.Fatalf("Advance past duration = settled %v fraction %v, want true, 1", settled, fraction)
	}
	if pick == "" {
		t.Fatal("no pick committed")
	}

	// Further advances return the committed pick unchanged
	again, _, settled := s.Advance(start.Add(2 * Duration))
	if !settled || again != pick {
		t.Fatalf("pick changed after settling: %q then %q", pick, again)
	}
}

func TestCancelDiscardsWithoutCommitting(t *testing.T) {
	s, err := NewSession([]string{"a", "b"}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	start := time.Now()
	s.Start(start)
	s.Advance(start.Add(time.Second))

	s.Cancel()

	if s.Running() || s.Settled() {
		t.Fatal("cancelled session still active")
	}
	if _, ok := s.Pick(); ok {
		t.Fatal("cancelled session kept a pick")
	}
	if s.Fraction() != 0 {
		t.Fatalf("Fraction after cancel = %v, want 0", s.Fraction())
	}
}

func TestFinalDrawIsRoughlyUniform(t *testing.T) {
	const runs = 10000
	pool := []string{"a", "b", "c", "d"}
	counts := make(map[string]int, len(pool))
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < runs; i++ {
		s, err := NewSession(pool, rng)
		if err != nil {
			t.Fatal(err)
		}
		start := time.Unix(0, 0)
		s.Start(start)
		// A few flicker frames, then past the deadline
		s.Advance(start.Add(Duration / 3))
		s.Advance(start.Add(2 * Duration / 3))
		pick, _, settled := s.Advance(start.Add(Duration))
		if !settled {
			t.Fatal("session never settled")
		}
		counts[pick]++
	}

	expected := runs / len(pool)
	for _, item := range pool {
		n := counts[item]
		if n < expected*8/10 || n > expected*12/10 {
			t.Fatalf("item %q drawn %d times over %d runs, expected ~%d", item, n, runs, expected)
		}
	}
}
