package tui

import (
	"context"
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvidela/duet/internal/config"
	"github.com/nvidela/duet/internal/domain"
	"github.com/nvidela/duet/internal/log"
	"github.com/nvidela/duet/internal/reveal"
	"github.com/nvidela/duet/internal/service"
)

type stubMovieRepo struct{}

func (stubMovieRepo) GetMovies(context.Context, domain.ListName) ([]*domain.Movie, error) {
	return nil, nil
}
func (stubMovieRepo) AddMovie(_ context.Context, nm domain.NewMovie) (*domain.Movie, error) {
	return &domain.Movie{ID: "new", Title: nm.Title, List: nm.List}, nil
}
func (stubMovieRepo) SetWatched(context.Context, string, bool) (*domain.Movie, error) {
	return nil, nil
}
func (stubMovieRepo) DeleteMovie(context.Context, string) error { return nil }

type stubCouponRepo struct{}

func (stubCouponRepo) GetCoupons(context.Context, string) ([]*domain.Coupon, error) {
	return nil, nil
}
func (stubCouponRepo) CreateCoupon(context.Context, domain.NewCoupon) (*domain.Coupon, error) {
	return nil, nil
}
func (stubCouponRepo) SetRedeemed(context.Context, string, bool) (*domain.Coupon, bool, error) {
	return nil, false, nil
}
func (stubCouponRepo) DeleteCoupon(context.Context, string) error { return nil }

type stubProductRepo struct{}

func (stubProductRepo) GetProducts(context.Context) ([]*domain.Product, error) { return nil, nil }
func (stubProductRepo) CreateProduct(context.Context, domain.NewProduct) (*domain.Product, error) {
	return nil, nil
}
func (stubProductRepo) UpdateProduct(context.Context, string, domain.ProductPatch) (*domain.Product, error) {
	return nil, nil
}
func (stubProductRepo) DeleteProduct(context.Context, string) error { return nil }

type stubPetRepo struct{}

func (stubPetRepo) GetPet(context.Context) (*domain.Pet, error) { return &domain.Pet{}, nil }
func (stubPetRepo) Interact(context.Context, domain.InteractionType) (*domain.Pet, error) {
	return &domain.Pet{}, nil
}

type stubSearchRepo struct{}

func (stubSearchRepo) SearchTitles(context.Context, string) ([]domain.SearchResult, error) {
	return nil, nil
}

func newTestModel(cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := log.Discard()
	return New(
		cfg,
		service.NewMovieService(stubMovieRepo{}, nil, logger),
		service.NewCouponService(stubCouponRepo{}, nil, logger),
		service.NewProductService(stubProductRepo{}, nil, logger),
		service.NewPetService(stubPetRepo{}, nil, logger),
		service.NewSearchService(stubSearchRepo{}, logger),
		nil,
		logger,
	)
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyPress(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "ctrl+r":
			msg = tea.KeyMsg{Type: tea.KeyCtrlR}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = update(m, msg)
	}
	return m
}

// A load answer that arrives after the view moved on (newer fetch issued,
// or a different list selected) must not clobber the visible slice.
func TestStaleLoadResponsesAreDropped(t *testing.T) {
	current := []*domain.Movie{{ID: "m1", Title: "Alien", List: domain.ListBarbara}}
	stale := []*domain.Movie{{ID: "old", Title: "Oldboy", List: domain.ListBarbara}}

	t.Run("superseded seq", func(t *testing.T) {
		m := newTestModel(nil)
		m.movieSeq = 2
		m.movieTracker.SetSlice(string(domain.ListBarbara), current)
		m.rebuildMovieRows()

		m, _ = update(m, MoviesLoadedMsg{List: domain.ListBarbara, Movies: stale, Seq: 1})

		got := m.movieTracker.Items()
		if len(got) != 1 || got[0].ID != "m1" {
			t.Fatalf("stale response replaced the visible slice: %v", got)
		}
	})

	t.Run("different list", func(t *testing.T) {
		m := newTestModel(nil)
		m.movieSeq = 2
		m.movieTracker.SetSlice(string(domain.ListBarbara), current)
		m.rebuildMovieRows()

		m, _ = update(m, MoviesLoadedMsg{List: domain.ListNico, Movies: stale, Seq: 2})

		got := m.movieTracker.Items()
		if len(got) != 1 || got[0].ID != "m1" {
			t.Fatalf("response for another list replaced the visible slice: %v", got)
		}
	})

	t.Run("wishlist seq", func(t *testing.T) {
		m := newTestModel(nil)
		m.tab = TabWishlist
		m.productSeq = 3
		m.productTracker.SetSlice(m.products.Key(), []*domain.Product{{ID: "p1", Name: "Lamp"}})
		m.rebuildProductRows()

		m, _ = update(m, ProductsLoadedMsg{Products: []*domain.Product{{ID: "old"}}, Seq: 2})

		got := m.productTracker.Items()
		if len(got) != 1 || got[0].ID != "p1" {
			t.Fatalf("stale wishlist response replaced the visible slice: %v", got)
		}
	})
}

// A tick from a cancelled reveal session must neither advance the session
// nor schedule another tick.
func TestStaleRevealTickIsDropped(t *testing.T) {
	m := newTestModel(nil)

	pool := []*domain.Movie{{ID: "m1"}, {ID: "m2"}}
	session, err := reveal.NewSession(pool, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	session.Start(time.Now())
	m.revealSession = session
	m.revealGen = 2

	m, cmd := update(m, RevealTickMsg{Gen: 1})
	if cmd != nil {
		t.Fatal("stale tick scheduled a follow-up tick")
	}
	if m.revealSession.Settled() {
		t.Fatal("stale tick advanced the session")
	}
}

func TestWishlistFilterNarrowsRows(t *testing.T) {
	m := newTestModel(nil)
	m.tab = TabWishlist
	m.productTracker.SetSlice(m.products.Key(), []*domain.Product{
		{ID: "p1", Name: "Desk lamp"},
		{ID: "p2", Name: "Wool blanket"},
		{ID: "p3", Name: "Lava lamp"},
	})
	m.rebuildProductRows()

	m = keyPress(m, "/", "lamp", "enter")

	if m.productQuery != "lamp" {
		t.Fatalf("productQuery = %q, want %q", m.productQuery, "lamp")
	}
	if got := m.productRows.Len(); got != 2 {
		t.Fatalf("filtered rows = %d, want 2", got)
	}

	m = keyPress(m, "esc")
	if m.productQuery != "" {
		t.Fatalf("escape left productQuery = %q", m.productQuery)
	}
	if got := m.productRows.Len(); got != 3 {
		t.Fatalf("rows after clearing filter = %d, want 3", got)
	}
}

// The like keys must flip the fixed heart fields no matter what the
// owners are called in config.
func TestLikeKeysIgnoreOwnerRenames(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Owners.First = "Barb"
	cfg.Owners.Second = "Nick"

	tests := []struct {
		name  string
		press string
		check func(p *domain.Product) bool
	}{
		{"first owner key", "b", func(p *domain.Product) bool { return p.LikeBarbara }},
		{"second owner key", "n", func(p *domain.Product) bool { return p.LikeNico }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(cfg)
			m.tab = TabWishlist
			m.productTracker.SetSlice(m.products.Key(), []*domain.Product{{ID: "p1", Name: "Lamp"}})
			m.rebuildProductRows()

			m = keyPress(m, tt.press)

			got, ok := m.productTracker.Item("p1")
			if !ok {
				t.Fatal("product vanished from the tracker")
			}
			if !tt.check(got) {
				t.Fatalf("like key %q flipped the wrong heart: %+v", tt.press, got)
			}
			if !m.productTracker.Pending("p1") {
				t.Fatal("like was not marked pending")
			}
		})
	}
}

func TestHardResetDropsCaches(t *testing.T) {
	m := newTestModel(nil)
	m.movies.Cache().Set(string(domain.ListBarbara), []*domain.Movie{{ID: "m1"}})
	m.products.Cache().Set(m.products.Key(), []*domain.Product{{ID: "p1"}})

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("hard reset did not kick off a refetch")
	}
	if _, ok := m.movies.Cache().Get(string(domain.ListBarbara)); ok {
		t.Fatal("movie cache survived the reset")
	}
	if _, ok := m.products.Cache().Get(m.products.Key()); ok {
		t.Fatal("product cache survived the reset")
	}
}
