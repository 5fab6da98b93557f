package service

import (
	"context"
	"testing"

	"github.com/nvidela/duet/internal/domain"
	"github.com/nvidela/duet/internal/log"
)

type fakeSearchRepo struct {
	results []domain.SearchResult
	calls   int
}

func (f *fakeSearchRepo) SearchTitles(_ context.Context, _ string) ([]domain.SearchResult, error) {
	f.calls++
	return f.results, nil
}

func TestSearchTitlesSkipsEmptyQuery(t *testing.T) {
	repo := &fakeSearchRepo{}
	svc := NewSearchService(repo, log.Discard())

	got, err := svc.SearchTitles(context.Background(), "   ")
	if err != nil || got != nil {
		t.Fatalf("blank query = %v, %v, want nil, nil", got, err)
	}
	if repo.calls != 0 {
		t.Fatalf("calls = %d, blank query must not hit the provider", repo.calls)
	}
}

func TestSearchTitlesDedupesProviderIDs(t *testing.T) {
	repo := &fakeSearchRepo{results: []domain.SearchResult{
		{APIID: "1", Title: "Alien"},
		{APIID: "2", Title: "Aliens"},
		{APIID: "1", Title: "Alien (Director's Cut)"},
	}}
	svc := NewSearchService(repo, log.Discard())

	got, err := svc.SearchTitles(context.Background(), "alien")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2 after dedupe", len(got))
	}
	if got[0].Title != "Alien" || got[1].Title != "Aliens" {
		t.Fatalf("dedupe kept the wrong entries: %v", got)
	}
}
