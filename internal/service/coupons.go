package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/nvidela/duet/internal/cache"
	"github.com/nvidela/duet/internal/domain"
	"github.com/nvidela/duet/internal/store"
)

// CouponService handles the coupon ledger with per-owner caching.
type CouponService struct {
	repo   domain.CouponRepository
	logger *slog.Logger
	cache  *cache.Cache[*domain.Coupon]
	store  *store.Store

	// now is swappable for expiration tests
	now func() time.Time
}

// NewCouponService creates a new coupon service
func NewCouponService(repo domain.CouponRepository, st *store.Store, logger *slog.Logger) *CouponService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CouponService{
		repo:   repo,
		logger: logger,
		cache:  cache.New[*domain.Coupon](),
		store:  st,
		now:    time.Now,
	}
}

// Cache exposes the backing cache for the mutation tracker to mirror into
func (s *CouponService) Cache() *cache.Cache[*domain.Coupon] {
	return s.cache
}

// Coupons returns an owner's coupons, unredeemed first. The slice is
// fetched once per owner per session unless force is set.
func (s *CouponService) Coupons(ctx context.Context, owner string, force bool) ([]*domain.Coupon, error) {
	if !force {
		if cached, ok := s.cache.Get(owner); ok {
			s.logger.Debug("cache hit", "owner", owner)
			return sortUnredeemedFirst(cached), nil
		}
	}

	coupons, err := s.repo.GetCoupons(ctx, owner)
	if err != nil {
		s.logger.Error("failed to get coupons", "owner", owner, "error", err)
		return nil, err
	}

	s.cache.Set(owner, coupons)
	if s.store != nil {
		if err := s.store.SaveCoupons(owner, coupons); err != nil {
			s.logger.Warn("failed to persist coupon snapshot", "owner", owner, "error", err)
		}
	}
	s.logger.Info("loaded coupons", "owner", owner, "count", len(coupons))

	return sortUnredeemedFirst(coupons), nil
}

// Snapshot returns the last persisted slice for an owner
func (s *CouponService) Snapshot(owner string) ([]*domain.Coupon, bool) {
	if s.store == nil {
		return nil, false
	}
	coupons, ok := s.store.Coupons(owner)
	if !ok {
		return nil, false
	}
	return sortUnredeemedFirst(coupons), true
}

// Create creates a coupon and prepends it to the owner's cached slice
func (s *CouponService) Create(ctx context.Context, nc domain.NewCoupon) (*domain.Coupon, error) {
	created, err := s.repo.CreateCoupon(ctx, nc)
	if err != nil {
		s.logger.Error("failed to create coupon", "title", nc.Title, "error", err)
		return nil, err
	}
	s.cache.InsertFront(created.Owner, created)
	s.logger.Info("created coupon", "title", created.Title, "owner", created.Owner)
	return created, nil
}

// Redeem sets the redeemed flag on a coupon. Redeeming a dead coupon
// (already redeemed and not reusable, or expired) is a no-op: no network
// call, no state change, the coupon comes back unchanged.
//
// The removed result reports that the coupon is gone from the collection:
// the server deletes non-reusable coupons on redemption. Reusability is
// captured before the request goes out, since not every backend response
// shape discloses it.
func (s *CouponService) Redeem(ctx context.Context, c *domain.Coupon, redeemed bool) (updated *domain.Coupon, removed bool, err error) {
	if redeemed && !c.Redeemable(s.now()) {
		return c, false, nil
	}

	reusable := c.Reusable

	result, serverDeleted, err := s.repo.SetRedeemed(ctx, c.ID, redeemed)
	if err != nil {
		s.logger.Error("failed to redeem coupon", "id", c.ID, "error", err)
		return nil, false, err
	}

	if redeemed && (serverDeleted || !reusable) {
		s.cache.RemoveOne(c.Owner, c.ID)
		s.logger.Info("coupon redeemed and removed", "id", c.ID)
		return nil, true, nil
	}

	if result == nil {
		// Server confirmed without echoing the object back
		flipped := *c
		flipped.Redeemed = redeemed
		result = &flipped
	}
	s.cache.UpdateOne(c.Owner, c.ID, result)
	return result, false, nil
}

// Delete removes a coupon
func (s *CouponService) Delete(ctx context.Context, c *domain.Coupon) error {
	if err := s.repo.DeleteCoupon(ctx, c.ID); err != nil {
		s.logger.Error("failed to delete coupon", "id", c.ID, "error", err)
		return err
	}
	s.cache.RemoveOne(c.Owner, c.ID)
	return nil
}

// sortUnredeemedFirst orders live coupons before redeemed ones, keeping
// server order within each group.
func sortUnredeemedFirst(coupons []*domain.Coupon) []*domain.Coupon {
	sorted := make([]*domain.Coupon, len(coupons))
	copy(sorted, coupons)
	sort.SliceStable(sorted, func(i, j int) bool {
		return !sorted[i].Redeemed && sorted[j].Redeemed
	})
	return sorted
}
