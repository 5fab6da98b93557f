package domain

import (
	"context"
	"time"
)

// NewMovie holds the fields for adding a movie to a list.
// The server assigns the ID.
type NewMovie struct {
	Title  string
	APIID  string
	List   ListName
	Poster string // empty = no poster
}

// NewCoupon holds the fields for creating a coupon. Optional fields
// default to absent: nil ExpiresAt means the coupon never expires.
type NewCoupon struct {
	Title       string
	Description string
	Owner       string
	Reusable    bool
	ExpiresAt   *time.Time
}

// NewProduct holds the fields for creating a wishlist product. Exactly one
// of ImagePath (local file, uploaded as multipart) or ImageURL should be
// set; store fields are optional.
type NewProduct struct {
	Name      string
	ImagePath string
	ImageURL  string
	StoreName string
	StoreLink string
}

// ProductPatch is a partial update for a product. Nil fields are left
// unchanged server-side.
type ProductPatch struct {
	Name        *string
	Image       *string
	Bought      *bool
	LikeNico    *bool
	LikeBarbara *bool
}

// MovieRepository provides access to the shared watch lists
type MovieRepository interface {
	// GetMovies returns all movies on a list, in server order
	GetMovies(ctx context.Context, list ListName) ([]*Movie, error)

	// AddMovie adds a movie to a list and returns the stored item
	AddMovie(ctx context.Context, m NewMovie) (*Movie, error)

	// SetWatched updates the watched flag and returns the stored item.
	// Sending the same target value twice is safe.
	SetWatched(ctx context.Context, id string, watched bool) (*Movie, error)

	// DeleteMovie removes a movie. An already-deleted id is treated
	// as success.
	DeleteMovie(ctx context.Context, id string) error
}

// CouponRepository provides access to the coupon ledger
type CouponRepository interface {
	// GetCoupons returns all coupons held by an owner
	GetCoupons(ctx context.Context, owner string) ([]*Coupon, error)

	// CreateCoupon creates a coupon and returns the stored item
	CreateCoupon(ctx context.Context, c NewCoupon) (*Coupon, error)

	// SetRedeemed updates the redeemed flag. The bool result reports
	// whether the server deleted the coupon instead of updating it
	// (non-reusable coupons are removed on redemption); when true the
	// returned coupon is nil.
	SetRedeemed(ctx context.Context, id string, redeemed bool) (*Coupon, bool, error)

	// DeleteCoupon removes a coupon
	DeleteCoupon(ctx context.Context, id string) error
}

// ProductRepository provides access to the shopping wishlist
type ProductRepository interface {
	// GetProducts returns the full wishlist
	GetProducts(ctx context.Context) ([]*Product, error)

	// CreateProduct creates a product and returns the stored item
	CreateProduct(ctx context.Context, p NewProduct) (*Product, error)

	// UpdateProduct applies a partial update and returns the stored item
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*Product, error)

	// DeleteProduct removes a product
	DeleteProduct(ctx context.Context, id string) error
}

// PetRepository provides access to the virtual pet
type PetRepository interface {
	// GetPet returns the pet's current state
	GetPet(ctx context.Context) (*Pet, error)

	// Interact records an app activity and returns the pet's new state
	Interact(ctx context.Context, kind InteractionType) (*Pet, error)
}

// SearchRepository provides external movie metadata lookup for the
// add-movie flow
type SearchRepository interface {
	// SearchTitles queries the metadata provider
	SearchTitles(ctx context.Context, query string) ([]SearchResult, error)
}
