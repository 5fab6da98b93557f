package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nvidela/duet/internal/domain"
)

// SearchService queries the external metadata provider for the add-movie
// flow. Debouncing happens at the UI layer; this layer just dedupes.
type SearchService struct {
	repo   domain.SearchRepository
	logger *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(repo domain.SearchRepository, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{repo: repo, logger: logger}
}

// SearchTitles queries the provider and drops duplicate provider IDs,
// which the upstream occasionally returns for multi-region releases.
func (s *SearchService) SearchTitles(ctx context.Context, query string) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	s.logger.Debug("searching titles", "query", query)

	results, err := s.repo.SearchTitles(ctx, query)
	if err != nil {
		s.logger.Error("title search failed", "query", query, "error", err)
		return nil, err
	}

	seen := make(map[string]bool, len(results))
	deduped := results[:0]
	for _, r := range results {
		if seen[r.APIID] {
			continue
		}
		seen[r.APIID] = true
		deduped = append(deduped, r)
	}

	s.logger.Debug("title search complete", "query", query, "results", len(deduped))
	return deduped, nil
}
