package cache

import (
	"testing"

	"github.com/nvidela/duet/internal/domain"
)

func movie(id, title string) *domain.Movie {
	return &domain.Movie{ID: id, Title: title, List: domain.ListBarbara}
}

func TestGetMissesBeforeSet(t *testing.T) {
	c := New[*domain.Movie]()
	if _, ok := c.Get("Barbara"); ok {
		t.Fatal("Get on an empty cache should miss")
	}
}

func TestFilterSwitchKeepsEachKey(t *testing.T) {
	c := New[*domain.Movie]()

	c.Set("Barbara", []*domain.Movie{movie("a", "Alien"), movie("b", "Brazil")})
	c.Set("Nico", []*domain.Movie{movie("c", "Casablanca")})

	got, ok := c.Get("Barbara")
	if !ok || len(got) != 2 {
		t.Fatalf("Barbara slice = %v, %v, want 2 items", got, ok)
	}
	got, ok = c.Get("Nico")
	if !ok || len(got) != 1 {
		t.Fatalf("Nico slice = %v, %v, want 1 item", got, ok)
	}

	// Switching back must serve the original slice, not a refetch
	got, _ = c.Get("Barbara")
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("Barbara slice changed after filter switch: %v", got)
	}
}

func TestGetReturnsACopy(t *testing.T) {
	c := New[*domain.Movie]()
	c.Set("k", []*domain.Movie{movie("a", "Alien"), movie("b", "Brazil")})

	got, _ := c.Get("k")
	got[0] = movie("z", "Zardoz")

	again, _ := c.Get("k")
	if again[0].ID != "a" {
		t.Fatalf("mutating a Get result leaked into the cache: %v", again)
	}
}

func TestUpdateOne(t *testing.T) {
	c := New[*domain.Movie]()
	c.Set("k", []*domain.Movie{movie("a", "Alien"), movie("b", "Brazil")})

	updated := movie("b", "Brazil")
	updated.Watched = true
	c.UpdateOne("k", "b", updated)

	got, _ := c.Get("k")
	if !got[1].Watched {
		t.Fatal("UpdateOne did not replace the entry")
	}

	// Unknown key and unknown id are both no-ops
	c.UpdateOne("missing", "b", updated)
	c.UpdateOne("k", "missing", updated)
}

func TestRemoveOne(t *testing.T) {
	c := New[*domain.Movie]()
	c.Set("k", []*domain.Movie{movie("a", "Alien"), movie("b", "Brazil"), movie("c", "Casablanca")})

	c.RemoveOne("k", "b")

	got, _ := c.Get("k")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("RemoveOne left %v, want [a c]", got)
	}
}

func TestInsertFront(t *testing.T) {
	c := New[*domain.Movie]()

	// A never-fetched key stays absent so the first view still fetches
	c.InsertFront("k", movie("x", "Xanadu"))
	if _, ok := c.Get("k"); ok {
		t.Fatal("InsertFront should not create a slice for an unfetched key")
	}

	c.Set("k", []*domain.Movie{movie("a", "Alien")})
	c.InsertFront("k", movie("x", "Xanadu"))

	got, _ := c.Get("k")
	if len(got) != 2 || got[0].ID != "x" {
		t.Fatalf("InsertFront = %v, want x first", got)
	}
}

func TestInvalidateAll(t *testing.T) {
	c := New[*domain.Movie]()
	c.Set("a", []*domain.Movie{movie("1", "One")})
	c.Set("b", []*domain.Movie{movie("2", "Two")})

	c.InvalidateAll()
	if _, ok := c.Get("a"); ok {
		t.Fatal("InvalidateAll left a key behind")
	}
	if _, ok := c.Get("b"); ok {
		t.Fatal("InvalidateAll left a key behind")
	}

	// The cache must still accept new slices afterwards
	c.Set("a", []*domain.Movie{movie("1", "One")})
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Set after InvalidateAll did not stick")
	}
}
