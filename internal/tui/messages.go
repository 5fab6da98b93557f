package tui

import (
	"github.com/nvidela/duet/internal/domain"
)

// Message types for the TUI. Load messages carry the filter key and the
// fetch generation they answer so responses for a superseded filter or a
// dismissed view are dropped instead of clobbering current state.

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// StatusMsg sets a temporary status bar message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message for a given generation
type ClearStatusMsg struct {
	Seq int
}

// MoviesLoadedMsg signals that a movie list has been loaded
type MoviesLoadedMsg struct {
	List   domain.ListName
	Movies []*domain.Movie
	Seq    int
}

// MovieAddedMsg signals that a movie was added to a list
type MovieAddedMsg struct {
	Movie *domain.Movie
}

// MovieWatchedMsg signals a confirmed watched-flag mutation
type MovieWatchedMsg struct {
	ID    string
	Movie *domain.Movie
}

// MovieDeletedMsg signals a confirmed movie deletion
type MovieDeletedMsg struct {
	ID string
}

// SearchResultsMsg carries external metadata results for the add flow
type SearchResultsMsg struct {
	Query   string
	Results []domain.SearchResult
	Seq     int
}

// SearchDebounceMsg fires when the search input has been quiet long enough
type SearchDebounceMsg struct {
	Query string
	Seq   int
}

// CouponsLoadedMsg signals that an owner's coupons have been loaded
type CouponsLoadedMsg struct {
	Owner   string
	Coupons []*domain.Coupon
	Seq     int
}

// CouponCreatedMsg signals a confirmed coupon creation
type CouponCreatedMsg struct {
	Coupon *domain.Coupon
}

// CouponRedeemedMsg signals a confirmed redemption. Removed means the
// coupon was non-reusable and is gone from the collection.
type CouponRedeemedMsg struct {
	ID      string
	Coupon  *domain.Coupon
	Removed bool
}

// CouponDeletedMsg signals a confirmed coupon deletion
type CouponDeletedMsg struct {
	ID string
}

// ProductsLoadedMsg signals that the wishlist has been loaded
type ProductsLoadedMsg struct {
	Products []*domain.Product
	Seq      int
}

// ProductCreatedMsg signals a confirmed product creation
type ProductCreatedMsg struct {
	Product *domain.Product
}

// ProductUpdatedMsg signals a confirmed product mutation
type ProductUpdatedMsg struct {
	ID      string
	Product *domain.Product
	Kind    domain.InteractionType // pet notification to fire
}

// ProductDeletedMsg signals a confirmed product deletion
type ProductDeletedMsg struct {
	ID string
}

// PetLoadedMsg signals that the pet state has been loaded
type PetLoadedMsg struct {
	Pet *domain.Pet
}

// PetNotifiedMsg carries the pet's state after an interaction.
// A nil Pet means the interaction failed, which nobody minds.
type PetNotifiedMsg struct {
	Pet *domain.Pet
}

// MutationFailedMsg signals a failed mutation; the optimistic change for
// ID rolls back on the tab it belongs to
type MutationFailedMsg struct {
	Tab Tab
	ID  string
	Err error
}

// RevealTickMsg advances the randomized reveal session. Stale generations
// (after cancel or settle) are dropped.
type RevealTickMsg struct {
	Gen int
}
