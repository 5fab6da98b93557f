package service

import (
	"context"
	"testing"

	"github.com/nvidela/duet/internal/domain"
	"github.com/nvidela/duet/internal/log"
)

type fakeMovieRepo struct {
	lists    map[domain.ListName][]*domain.Movie
	getCalls int
}

func (f *fakeMovieRepo) GetMovies(_ context.Context, list domain.ListName) ([]*domain.Movie, error) {
	f.getCalls++
	return f.lists[list], nil
}

func (f *fakeMovieRepo) AddMovie(_ context.Context, m domain.NewMovie) (*domain.Movie, error) {
	return &domain.Movie{ID: "new", Title: m.Title, APIID: m.APIID, List: m.List}, nil
}

func (f *fakeMovieRepo) SetWatched(_ context.Context, id string, watched bool) (*domain.Movie, error) {
	for _, movies := range f.lists {
		for _, m := range movies {
			if m.ID == id {
				updated := *m
				updated.Watched = watched
				return &updated, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMovieRepo) DeleteMovie(_ context.Context, _ string) error {
	return nil
}

func newMovieFixture() *fakeMovieRepo {
	return &fakeMovieRepo{lists: map[domain.ListName][]*domain.Movie{
		domain.ListBarbara: {
			{ID: "m1", Title: "Alien", List: domain.ListBarbara, Watched: true},
			{ID: "m2", Title: "Brazil", List: domain.ListBarbara},
		},
		domain.ListNico: {
			{ID: "m1", Title: "Alien", List: domain.ListNico, Watched: true},
			{ID: "m3", Title: "Casablanca", List: domain.ListNico, Watched: true},
		},
		domain.ListShared: {},
	}}
}

func TestMoviesCachesPerList(t *testing.T) {
	repo := newMovieFixture()
	svc := NewMovieService(repo, nil, log.Discard())
	ctx := context.Background()

	if _, err := svc.Movies(ctx, domain.ListBarbara, false); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Movies(ctx, domain.ListBarbara, false); err != nil {
		t.Fatal(err)
	}
	if repo.getCalls != 1 {
		t.Fatalf("getCalls = %d after two reads of one list, want 1", repo.getCalls)
	}

	if _, err := svc.Movies(ctx, domain.ListNico, false); err != nil {
		t.Fatal(err)
	}
	if repo.getCalls != 2 {
		t.Fatalf("getCalls = %d after first read of second list, want 2", repo.getCalls)
	}

	// Switching back to the first list must not refetch
	if _, err := svc.Movies(ctx, domain.ListBarbara, false); err != nil {
		t.Fatal(err)
	}
	if repo.getCalls != 2 {
		t.Fatalf("getCalls = %d after filter switch, want 2", repo.getCalls)
	}
}

func TestMoviesForceRefetches(t *testing.T) {
	repo := newMovieFixture()
	svc := NewMovieService(repo, nil, log.Discard())
	ctx := context.Background()

	svc.Movies(ctx, domain.ListBarbara, false)
	svc.Movies(ctx, domain.ListBarbara, true)
	if repo.getCalls != 2 {
		t.Fatalf("getCalls = %d with force, want 2", repo.getCalls)
	}
}

func TestWatchedListMergesAndDedupes(t *testing.T) {
	repo := newMovieFixture()
	svc := NewMovieService(repo, nil, log.Discard())

	watched, err := svc.Movies(context.Background(), domain.ListWatched, false)
	if err != nil {
		t.Fatal(err)
	}

	if len(watched) != 2 {
		t.Fatalf("watched list has %d movies, want 2 (m1 deduped, m3)", len(watched))
	}
	ids := map[string]bool{}
	for _, m := range watched {
		if !m.Watched {
			t.Fatalf("unwatched movie %q leaked into the watched list", m.Title)
		}
		if ids[m.ID] {
			t.Fatalf("movie %q appears twice", m.ID)
		}
		ids[m.ID] = true
	}
	if !ids["m1"] || !ids["m3"] {
		t.Fatalf("watched ids = %v, want m1 and m3", ids)
	}
}

func TestSetWatchedMirrorsToHomeList(t *testing.T) {
	repo := newMovieFixture()
	svc := NewMovieService(repo, nil, log.Discard())
	ctx := context.Background()

	movies, err := svc.Movies(ctx, domain.ListBarbara, false)
	if err != nil {
		t.Fatal(err)
	}
	target := movies[1] // m2, unwatched

	updated, err := svc.SetWatched(ctx, target, true)
	if err != nil {
		t.Fatal(err)
	}
	if !updated.Watched {
		t.Fatal("SetWatched returned an unwatched movie")
	}

	// The cached list must reflect the change without a refetch
	cached, err := svc.Movies(ctx, domain.ListBarbara, false)
	if err != nil {
		t.Fatal(err)
	}
	if !cached[1].Watched {
		t.Fatal("cached home list does not reflect the watched flip")
	}
	if repo.getCalls != 1 {
		t.Fatalf("getCalls = %d, mirror should not refetch", repo.getCalls)
	}
}

func TestAddPrependsToCachedList(t *testing.T) {
	repo := newMovieFixture()
	svc := NewMovieService(repo, nil, log.Discard())
	ctx := context.Background()

	svc.Movies(ctx, domain.ListBarbara, false)

	added, err := svc.Add(ctx, domain.NewMovie{Title: "Dune", List: domain.ListBarbara})
	if err != nil {
		t.Fatal(err)
	}

	cached, _ := svc.Movies(ctx, domain.ListBarbara, false)
	if cached[0].ID != added.ID {
		t.Fatalf("cached list head = %q, want the new movie", cached[0].ID)
	}
}
