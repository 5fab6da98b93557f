package domain

// ListItem is the polymorphic interface for items rendered in collection
// views. It provides the common API the cache, the mutation tracker, and
// the list components need across movies, coupons, and products.
type ListItem interface {
	// GetID returns the server-assigned unique identifier
	GetID() string

	// GetTitle returns the display title
	GetTitle() string

	// GetDescription returns secondary info for display
	GetDescription() string

	// IsDone returns the item's terminal status flag
	// (watched / redeemed / bought)
	IsDone() bool
}
