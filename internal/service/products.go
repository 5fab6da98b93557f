package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/nvidela/duet/internal/cache"
	"github.com/nvidela/duet/internal/domain"
	"github.com/nvidela/duet/internal/store"
)

// productsKey is the single filter key for the wishlist: the whole
// collection is fetched at once and filtered client-side.
const productsKey = "products"

// StatusFilter narrows the wishlist by purchase state
type StatusFilter int

const (
	StatusAll StatusFilter = iota
	StatusPending
	StatusBought
)

// HeartFilter narrows the wishlist by like reactions
type HeartFilter int

const (
	HeartNone HeartFilter = iota
	HeartBarbara
	HeartNico
	HeartBoth
)

// ProductService handles the shopping wishlist.
type ProductService struct {
	repo   domain.ProductRepository
	logger *slog.Logger
	cache  *cache.Cache[*domain.Product]
	store  *store.Store
}

// NewProductService creates a new product service
func NewProductService(repo domain.ProductRepository, st *store.Store, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		repo:   repo,
		logger: logger,
		cache:  cache.New[*domain.Product](),
		store:  st,
	}
}

// Cache exposes the backing cache for the mutation tracker to mirror into
func (s *ProductService) Cache() *cache.Cache[*domain.Product] {
	return s.cache
}

// Key returns the wishlist's filter key
func (s *ProductService) Key() string {
	return productsKey
}

// Products returns the full wishlist, cached for the session
func (s *ProductService) Products(ctx context.Context, force bool) ([]*domain.Product, error) {
	if !force {
		if cached, ok := s.cache.Get(productsKey); ok {
			s.logger.Debug("cache hit", "key", productsKey)
			return cached, nil
		}
	}

	products, err := s.repo.GetProducts(ctx)
	if err != nil {
		s.logger.Error("failed to get products", "error", err)
		return nil, err
	}

	s.cache.Set(productsKey, products)
	if s.store != nil {
		if err := s.store.SaveProducts(products); err != nil {
			s.logger.Warn("failed to persist product snapshot", "error", err)
		}
	}
	s.logger.Info("loaded products", "count", len(products))

	return products, nil
}

// Snapshot returns the last persisted wishlist
func (s *ProductService) Snapshot() ([]*domain.Product, bool) {
	if s.store == nil {
		return nil, false
	}
	return s.store.Products()
}

// Create creates a product and prepends it to the cached wishlist
func (s *ProductService) Create(ctx context.Context, np domain.NewProduct) (*domain.Product, error) {
	created, err := s.repo.CreateProduct(ctx, np)
	if err != nil {
		s.logger.Error("failed to create product", "name", np.Name, "error", err)
		return nil, err
	}
	s.cache.InsertFront(productsKey, created)
	s.logger.Info("created product", "name", created.Name)
	return created, nil
}

// ToggleBought flips the bought flag and returns the stored item
func (s *ProductService) ToggleBought(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	bought := !p.Bought
	return s.Update(ctx, p.ID, domain.ProductPatch{Bought: &bought})
}

// ToggleLike flips one heart reaction. reactor must be one of the fixed
// domain.Reactor* names; display names for the owners never reach here.
func (s *ProductService) ToggleLike(ctx context.Context, p *domain.Product, reactor string) (*domain.Product, error) {
	var patch domain.ProductPatch
	switch reactor {
	case domain.ReactorBarbara:
		v := !p.LikeBarbara
		patch.LikeBarbara = &v
	case domain.ReactorNico:
		v := !p.LikeNico
		patch.LikeNico = &v
	default:
		return nil, fmt.Errorf("%w: unknown reactor %q", domain.ErrInvalidInput, reactor)
	}

	return s.Update(ctx, p.ID, patch)
}

// Update applies a partial update and returns the stored item
func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	updated, err := s.repo.UpdateProduct(ctx, id, patch)
	if err != nil {
		s.logger.Error("failed to update product", "id", id, "error", err)
		return nil, err
	}
	s.cache.UpdateOne(productsKey, id, updated)
	return updated, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		s.logger.Error("failed to delete product", "id", id, "error", err)
		return err
	}
	s.cache.RemoveOne(productsKey, id)
	return nil
}

// Filter applies the status filter, the heart filter, and a fuzzy name
// query to a wishlist slice, in that order.
func Filter(products []*domain.Product, status StatusFilter, heart HeartFilter, query string) []*domain.Product {
	query = strings.TrimSpace(query)

	var out []*domain.Product
	for _, p := range products {
		if status == StatusPending && p.Bought {
			continue
		}
		if status == StatusBought && !p.Bought {
			continue
		}
		switch heart {
		case HeartBarbara:
			if !p.LikeBarbara {
				continue
			}
		case HeartNico:
			if !p.LikeNico {
				continue
			}
		case HeartBoth:
			if !p.LikedByBoth() {
				continue
			}
		}
		if query != "" && !fuzzy.MatchNormalizedFold(query, p.Name) {
			continue
		}
		out = append(out, p)
	}
	return out
}
