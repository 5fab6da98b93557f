package service

import (
	"context"
	"testing"
	"time"

	"github.com/nvidela/duet/internal/domain"
	"github.com/nvidela/duet/internal/log"
)

type fakeCouponRepo struct {
	coupons      []*domain.Coupon
	getCalls     int
	redeemCalls  int
	serverDelete bool
}

func (f *fakeCouponRepo) GetCoupons(_ context.Context, owner string) ([]*domain.Coupon, error) {
	f.getCalls++
	var out []*domain.Coupon
	for _, c := range f.coupons {
		if c.Owner == owner {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCouponRepo) CreateCoupon(_ context.Context, nc domain.NewCoupon) (*domain.Coupon, error) {
	return &domain.Coupon{ID: "created", Title: nc.Title, Owner: nc.Owner, Reusable: nc.Reusable}, nil
}

func (f *fakeCouponRepo) SetRedeemed(_ context.Context, id string, redeemed bool) (*domain.Coupon, bool, error) {
	f.redeemCalls++
	if f.serverDelete {
		return nil, true, nil
	}
	for _, c := range f.coupons {
		if c.ID == id {
			updated := *c
			updated.Redeemed = redeemed
			return &updated, false, nil
		}
	}
	return nil, false, domain.ErrNotFound
}

func (f *fakeCouponRepo) DeleteCoupon(_ context.Context, _ string) error {
	return nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newCouponService(repo *fakeCouponRepo) *CouponService {
	svc := NewCouponService(repo, nil, log.Discard())
	svc.now = fixedNow
	return svc
}

func TestRedeemDeadCouponIsNoOp(t *testing.T) {
	spent := &domain.Coupon{ID: "c1", Title: "Breakfast", Owner: "Barbara", Redeemed: true, Reusable: false}
	repo := &fakeCouponRepo{coupons: []*domain.Coupon{spent}}
	svc := newCouponService(repo)

	got, removed, err := svc.Redeem(context.Background(), spent, true)
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Fatal("no-op redemption reported removal")
	}
	if got != spent {
		t.Fatalf("no-op redemption returned %v, want the same coupon back", got)
	}
	if repo.redeemCalls != 0 {
		t.Fatalf("redeemCalls = %d, a dead coupon must not hit the network", repo.redeemCalls)
	}
}

func TestRedeemExpiredCouponIsNoOp(t *testing.T) {
	past := fixedNow().Add(-24 * time.Hour)
	expired := &domain.Coupon{ID: "c1", Title: "Picnic", Owner: "Nico", ExpiresAt: &past}
	repo := &fakeCouponRepo{coupons: []*domain.Coupon{expired}}
	svc := newCouponService(repo)

	_, removed, err := svc.Redeem(context.Background(), expired, true)
	if err != nil || removed {
		t.Fatalf("expired redemption = removed %v err %v, want no-op", removed, err)
	}
	if repo.redeemCalls != 0 {
		t.Fatalf("redeemCalls = %d, want 0", repo.redeemCalls)
	}
}

func TestRedeemNonReusableRemoves(t *testing.T) {
	coupon := &domain.Coupon{ID: "c1", Title: "Breakfast", Owner: "Barbara", Reusable: false}
	repo := &fakeCouponRepo{coupons: []*domain.Coupon{coupon}}
	svc := newCouponService(repo)
	ctx := context.Background()

	// Prime the cache so removal is observable
	if _, err := svc.Coupons(ctx, "Barbara", false); err != nil {
		t.Fatal(err)
	}

	got, removed, err := svc.Redeem(ctx, coupon, true)
	if err != nil {
		t.Fatal(err)
	}
	if !removed || got != nil {
		t.Fatalf("non-reusable redemption = (%v, %v), want (nil, true)", got, removed)
	}

	cached, err := svc.Coupons(ctx, "Barbara", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(cached) != 0 {
		t.Fatalf("cache still holds %d coupons after removal", len(cached))
	}
	if repo.getCalls != 1 {
		t.Fatalf("getCalls = %d, removal must not refetch", repo.getCalls)
	}
}

func TestRedeemHonorsServerDeletionMarker(t *testing.T) {
	// Reusable client-side, but the server decides to delete anyway
	coupon := &domain.Coupon{ID: "c1", Title: "Breakfast", Owner: "Barbara", Reusable: true}
	repo := &fakeCouponRepo{coupons: []*domain.Coupon{coupon}, serverDelete: true}
	svc := newCouponService(repo)

	_, removed, err := svc.Redeem(context.Background(), coupon, true)
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Fatal("server deletion marker ignored")
	}
}

func TestRedeemReusableUpdatesInPlace(t *testing.T) {
	coupon := &domain.Coupon{ID: "c1", Title: "Massage", Owner: "Barbara", Reusable: true}
	repo := &fakeCouponRepo{coupons: []*domain.Coupon{coupon}}
	svc := newCouponService(repo)
	ctx := context.Background()

	svc.Coupons(ctx, "Barbara", false)

	got, removed, err := svc.Redeem(ctx, coupon, true)
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Fatal("reusable redemption reported removal")
	}
	if got == nil || !got.Redeemed {
		t.Fatalf("redeemed coupon = %v, want Redeemed true", got)
	}

	cached, _ := svc.Coupons(ctx, "Barbara", false)
	if len(cached) != 1 || !cached[0].Redeemed {
		t.Fatalf("cache after reusable redemption = %v, want one redeemed coupon", cached)
	}
}

func TestCouponsCachePerOwner(t *testing.T) {
	repo := &fakeCouponRepo{coupons: []*domain.Coupon{
		{ID: "c1", Owner: "Barbara"},
		{ID: "c2", Owner: "Nico"},
	}}
	svc := newCouponService(repo)
	ctx := context.Background()

	svc.Coupons(ctx, "Barbara", false)
	svc.Coupons(ctx, "Nico", false)
	svc.Coupons(ctx, "Barbara", false)
	if repo.getCalls != 2 {
		t.Fatalf("getCalls = %d, want one fetch per owner", repo.getCalls)
	}
}

func TestCouponsSortUnredeemedFirst(t *testing.T) {
	repo := &fakeCouponRepo{coupons: []*domain.Coupon{
		{ID: "c1", Owner: "Barbara", Redeemed: true},
		{ID: "c2", Owner: "Barbara"},
		{ID: "c3", Owner: "Barbara", Redeemed: true},
		{ID: "c4", Owner: "Barbara"},
	}}
	svc := newCouponService(repo)

	got, err := svc.Coupons(context.Background(), "Barbara", false)
	if err != nil {
		t.Fatal(err)
	}

	wantOrder := []string{"c2", "c4", "c1", "c3"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Fatalf("order = %v at %d, want %v", got[i].ID, i, wantOrder)
		}
	}
}
