package domain

import (
	"testing"
	"time"
)

func TestCouponRedeemable(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name   string
		coupon Coupon
		want   bool
	}{
		{"fresh", Coupon{}, true},
		{"redeemed non-reusable", Coupon{Redeemed: true}, false},
		{"redeemed reusable", Coupon{Redeemed: true, Reusable: true}, true},
		{"expired", Coupon{ExpiresAt: &past}, false},
		{"expired reusable", Coupon{Reusable: true, ExpiresAt: &past}, false},
		{"not yet expired", Coupon{ExpiresAt: &future}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.coupon.Redeemable(now); got != tt.want {
				t.Fatalf("Redeemable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPetMood(t *testing.T) {
	tests := []struct {
		name string
		pet  Pet
		want string
	}{
		{"happy wins", Pet{Happiness: 80, Energy: 20, Curiosity: 90}, "happy"},
		{"sleepy", Pet{Happiness: 40, Energy: 10}, "sleepy"},
		{"curious", Pet{Happiness: 40, Energy: 60, Curiosity: 75}, "curious"},
		{"content", Pet{Happiness: 50, Energy: 50, Curiosity: 50}, "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pet.Mood(); got != tt.want {
				t.Fatalf("Mood = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLikedByBoth(t *testing.T) {
	if (&Product{LikeNico: true}).LikedByBoth() {
		t.Fatal("one heart counted as both")
	}
	if !(&Product{LikeNico: true, LikeBarbara: true}).LikedByBoth() {
		t.Fatal("two hearts not counted")
	}
}
