package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nvidela/duet/internal/domain"
)

func TestMemoryOnlyStore(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, ok := s.ActiveTab(); ok {
		t.Fatal("fresh store should have no active tab")
	}
	if err := s.SaveActiveTab("coupons"); err != nil {
		t.Fatal(err)
	}
	tab, ok := s.ActiveTab()
	if !ok || tab != "coupons" {
		t.Fatalf("ActiveTab = %q, %v, want coupons", tab, ok)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duet.db")

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	movies := []*domain.Movie{{ID: "m1", Title: "Alien", List: domain.ListBarbara, Watched: true}}
	if err := s.SaveMovies(domain.ListBarbara, movies); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveActiveTab("wishlist"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	got, ok := s.Movies(domain.ListBarbara)
	if !ok || len(got) != 1 || got[0].Title != "Alien" || !got[0].Watched {
		t.Fatalf("Movies after reopen = %v, %v", got, ok)
	}
	tab, _ := s.ActiveTab()
	if tab != "wishlist" {
		t.Fatalf("ActiveTab after reopen = %q, want wishlist", tab)
	}
}

func TestSnapshotsRoundTrip(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	expires := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	coupons := []*domain.Coupon{{ID: "c1", Title: "Breakfast", Owner: "Barbara", ExpiresAt: &expires}}
	if err := s.SaveCoupons("Barbara", coupons); err != nil {
		t.Fatal(err)
	}
	got, ok := s.Coupons("Barbara")
	if !ok || got[0].ExpiresAt == nil || !got[0].ExpiresAt.Equal(expires) {
		t.Fatalf("Coupons = %v, %v", got, ok)
	}
	if _, ok := s.Coupons("Nico"); ok {
		t.Fatal("unknown owner should miss")
	}

	pet := &domain.Pet{ID: "pet1", Name: "Michi", Happiness: 90}
	if err := s.SavePet(pet); err != nil {
		t.Fatal(err)
	}
	gotPet, ok := s.Pet()
	if !ok || gotPet.Name != "Michi" || gotPet.Happiness != 90 {
		t.Fatalf("Pet = %v, %v", gotPet, ok)
	}
}

func TestInvalidateAllKeepsPrefs(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.SaveActiveTab("pet")
	s.SaveProducts([]*domain.Product{{ID: "p1", Name: "Lamp"}})

	if err := s.InvalidateAll(); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.Products(); ok {
		t.Fatal("InvalidateAll left a snapshot behind")
	}
	tab, ok := s.ActiveTab()
	if !ok || tab != "pet" {
		t.Fatalf("ActiveTab after InvalidateAll = %q, %v, want pet", tab, ok)
	}
}
