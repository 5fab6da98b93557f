package domain

import (
	"fmt"
	"time"
)

// ListName identifies a movie watch list
type ListName string

const (
	ListBarbara ListName = "Barbara"
	ListNico    ListName = "Nico"
	ListShared  ListName = "Juntos"

	// ListWatched is a virtual list: the union of all base lists,
	// filtered down to watched movies. It does not exist server-side.
	ListWatched ListName = "Vistas"
)

// BaseLists returns the lists that exist on the server, in display order.
func BaseLists() []ListName {
	return []ListName{ListBarbara, ListNico, ListShared}
}

// Movie is an entry on one of the shared watch lists
type Movie struct {
	ID      string   // Server-assigned unique identifier
	APIID   string   // External metadata provider ID
	Title   string   // Display title
	List    ListName // Owning list
	Watched bool     // Whether the movie has been seen
	Poster  string   // Poster image URL (may be empty)
}

// ListItem interface implementation for Movie

func (m *Movie) GetID() string    { return m.ID }
func (m *Movie) GetTitle() string { return m.Title }
func (m *Movie) IsDone() bool     { return m.Watched }

func (m *Movie) GetDescription() string {
	if m.Watched {
		return "watched"
	}
	return string(m.List)
}

// Coupon is a redeemable favor ticket
type Coupon struct {
	ID          string     // Server-assigned unique identifier
	Title       string     // Short label
	Description string     // What the coupon is good for
	Owner       string     // Which of the two users holds it
	Redeemed    bool       // Whether it has been cashed in
	Reusable    bool       // Reusable coupons survive redemption; others are deleted server-side
	ExpiresAt   *time.Time // nil = never expires
}

// Expired reports whether the coupon's expiration date has passed.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// Redeemable reports whether redeeming the coupon would do anything.
// A redeemed non-reusable coupon and an expired coupon are both dead.
func (c *Coupon) Redeemable(now time.Time) bool {
	if c.Expired(now) {
		return false
	}
	return !c.Redeemed || c.Reusable
}

// ListItem interface implementation for Coupon

func (c *Coupon) GetID() string    { return c.ID }
func (c *Coupon) GetTitle() string { return c.Title }
func (c *Coupon) IsDone() bool     { return c.Redeemed }

func (c *Coupon) GetDescription() string {
	if c.Redeemed {
		return "redeemed"
	}
	if c.ExpiresAt != nil {
		return fmt.Sprintf("expires %s", c.ExpiresAt.Format("2006-01-02"))
	}
	return c.Description
}

// Reactor names for the product like fields. The backend stores exactly
// these two reactions regardless of how the owners are displayed.
const (
	ReactorBarbara = "Barbara"
	ReactorNico    = "Nico"
)

// Product is an entry on the shared shopping wishlist
type Product struct {
	ID          string // Server-assigned unique identifier
	Name        string // Display name
	Image       string // Image URL
	Bought      bool   // Whether it has been purchased
	LikeNico    bool   // Nico's heart reaction
	LikeBarbara bool   // Barbara's heart reaction
	StoreName   string // Optional store name
	StoreLink   string // Optional store URL
}

// LikedByBoth reports whether both users have hearted the product.
func (p *Product) LikedByBoth() bool {
	return p.LikeNico && p.LikeBarbara
}

// ListItem interface implementation for Product

func (p *Product) GetID() string    { return p.ID }
func (p *Product) GetTitle() string { return p.Name }
func (p *Product) IsDone() bool     { return p.Bought }

func (p *Product) GetDescription() string {
	switch {
	case p.Bought:
		return "bought"
	case p.StoreName != "":
		return p.StoreName
	default:
		return "pending"
	}
}

// InteractionType identifies an app activity the pet reacts to
type InteractionType string

const (
	InteractAddMovie      InteractionType = "addMovie"
	InteractMarkWatched   InteractionType = "markWatched"
	InteractDeleteMovie   InteractionType = "deleteMovie"
	InteractAddProduct    InteractionType = "addProduct"
	InteractBuyProduct    InteractionType = "buyProduct"
	InteractDeleteProduct InteractionType = "deleteProduct"
	InteractLikeOne       InteractionType = "likeOne"
	InteractLikeBoth      InteractionType = "likeBoth"
	InteractAddCoupon     InteractionType = "addCoupon"
	InteractRedeemCoupon  InteractionType = "redeemCoupon"
)

// Pet is the shared virtual pet whose stats shift with app activity
type Pet struct {
	ID                string
	Name              string
	Happiness         int // 0-100
	Energy            int // 0-100
	Curiosity         int // 0-100
	LastInteractionAt time.Time
	LastInteraction   InteractionType
	LastMessage       string
}

// Mood returns a one-word summary derived from the stat levels.
func (p *Pet) Mood() string {
	switch {
	case p.Happiness >= 70:
		return "happy"
	case p.Energy <= 30:
		return "sleepy"
	case p.Curiosity >= 70:
		return "curious"
	default:
		return "content"
	}
}

// SearchResult is an external metadata candidate for the add-movie flow
type SearchResult struct {
	APIID  string // Metadata provider ID
	Title  string // Display title
	Poster string // Poster URL (may be empty)
	Kind   string // "movie" or "series"
}
