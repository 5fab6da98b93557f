package service

import (
	"context"
	"log/slog"

	"github.com/nvidela/duet/internal/cache"
	"github.com/nvidela/duet/internal/domain"
	"github.com/nvidela/duet/internal/store"
)

// MovieService handles the shared watch lists with per-list caching.
// Each base list is fetched at most once per session; the virtual
// "Vistas" list is merged from the cached base lists and never cached
// under its own key.
type MovieService struct {
	repo   domain.MovieRepository
	logger *slog.Logger
	cache  *cache.Cache[*domain.Movie]
	store  *store.Store
}

// NewMovieService creates a new movie service
func NewMovieService(repo domain.MovieRepository, st *store.Store, logger *slog.Logger) *MovieService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MovieService{
		repo:   repo,
		logger: logger,
		cache:  cache.New[*domain.Movie](),
		store:  st,
	}
}

// Cache exposes the backing cache for the mutation tracker to mirror into
func (s *MovieService) Cache() *cache.Cache[*domain.Movie] {
	return s.cache
}

// Movies returns the display slice for a list. Base lists come from the
// cache when available; the watched list is the union of all base lists
// filtered to watched movies, deduplicated by ID.
func (s *MovieService) Movies(ctx context.Context, list domain.ListName, force bool) ([]*domain.Movie, error) {
	if list == domain.ListWatched {
		return s.watchedMovies(ctx, force)
	}
	return s.listMovies(ctx, list, force)
}

func (s *MovieService) listMovies(ctx context.Context, list domain.ListName, force bool) ([]*domain.Movie, error) {
	key := string(list)

	if !force {
		if cached, ok := s.cache.Get(key); ok {
			s.logger.Debug("cache hit", "list", list)
			return cached, nil
		}
	}

	movies, err := s.repo.GetMovies(ctx, list)
	if err != nil {
		s.logger.Error("failed to get movies", "list", list, "error", err)
		return nil, err
	}

	s.cache.Set(key, movies)
	if s.store != nil {
		if err := s.store.SaveMovies(list, movies); err != nil {
			s.logger.Warn("failed to persist movie snapshot", "list", list, "error", err)
		}
	}
	s.logger.Info("loaded movies", "list", list, "count", len(movies))

	return movies, nil
}

func (s *MovieService) watchedMovies(ctx context.Context, force bool) ([]*domain.Movie, error) {
	seen := make(map[string]bool)
	var watched []*domain.Movie

	for _, list := range domain.BaseLists() {
		movies, err := s.listMovies(ctx, list, force)
		if err != nil {
			return nil, err
		}
		for _, m := range movies {
			if m.Watched && !seen[m.ID] {
				seen[m.ID] = true
				watched = append(watched, m)
			}
		}
	}
	return watched, nil
}

// Snapshot returns the last persisted slice for a list, for instant
// first paint while the real fetch is in flight.
func (s *MovieService) Snapshot(list domain.ListName) ([]*domain.Movie, bool) {
	if s.store == nil || list == domain.ListWatched {
		return nil, false
	}
	return s.store.Movies(list)
}

// Add adds a movie to a list and returns the stored item
func (s *MovieService) Add(ctx context.Context, m domain.NewMovie) (*domain.Movie, error) {
	added, err := s.repo.AddMovie(ctx, m)
	if err != nil {
		s.logger.Error("failed to add movie", "title", m.Title, "error", err)
		return nil, err
	}
	s.cache.InsertFront(string(added.List), added)
	s.logger.Info("added movie", "title", added.Title, "list", added.List)
	return added, nil
}

// SetWatched updates the watched flag and mirrors the confirmed object
// into the movie's home-list cache.
func (s *MovieService) SetWatched(ctx context.Context, movie *domain.Movie, watched bool) (*domain.Movie, error) {
	updated, err := s.repo.SetWatched(ctx, movie.ID, watched)
	if err != nil {
		s.logger.Error("failed to set watched", "id", movie.ID, "error", err)
		return nil, err
	}
	s.cache.UpdateOne(string(movie.List), movie.ID, updated)
	return updated, nil
}

// Delete removes a movie from its list. An already-deleted movie counts
// as success so the delete stays idempotent.
func (s *MovieService) Delete(ctx context.Context, movie *domain.Movie) error {
	if err := s.repo.DeleteMovie(ctx, movie.ID); err != nil {
		s.logger.Error("failed to delete movie", "id", movie.ID, "error", err)
		return err
	}
	s.cache.RemoveOne(string(movie.List), movie.ID)
	return nil
}
