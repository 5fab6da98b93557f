package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvidela/duet/internal/domain"
	"github.com/nvidela/duet/internal/reveal"
)

const (
	requestTimeout = 15 * time.Second
	searchDebounce = 400 * time.Millisecond
	statusLinger   = 3 * time.Second
)

// loadMoviesCmd fetches a movie list
func (m Model) loadMoviesCmd(list domain.ListName, seq int, force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		movies, err := m.movies.Movies(ctx, list, force)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading movies"}
		}
		return MoviesLoadedMsg{List: list, Movies: movies, Seq: seq}
	}
}

// addMovieCmd adds a movie to the active list
func (m Model) addMovieCmd(nm domain.NewMovie) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		added, err := m.movies.Add(ctx, nm)
		if err != nil {
			return ErrMsg{Err: err, Context: "adding movie"}
		}
		return MovieAddedMsg{Movie: added}
	}
}

// setWatchedCmd flips a movie's watched flag
func (m Model) setWatchedCmd(movie *domain.Movie, watched bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		updated, err := m.movies.SetWatched(ctx, movie, watched)
		if err != nil {
			return MutationFailedMsg{Tab: TabMovies, ID: movie.ID, Err: err}
		}
		return MovieWatchedMsg{ID: movie.ID, Movie: updated}
	}
}

// deleteMovieCmd removes a movie from its list
func (m Model) deleteMovieCmd(movie *domain.Movie) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.movies.Delete(ctx, movie); err != nil {
			return MutationFailedMsg{Tab: TabMovies, ID: movie.ID, Err: err}
		}
		return MovieDeletedMsg{ID: movie.ID}
	}
}

// searchDebounceCmd waits out the typing pause before querying
func searchDebounceCmd(query string, seq int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return SearchDebounceMsg{Query: query, Seq: seq}
	})
}

// searchTitlesCmd queries the metadata provider
func (m Model) searchTitlesCmd(query string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		results, err := m.search.SearchTitles(ctx, query)
		if err != nil {
			return ErrMsg{Err: err, Context: "searching titles"}
		}
		return SearchResultsMsg{Query: query, Results: results, Seq: seq}
	}
}

// loadCouponsCmd fetches an owner's coupons
func (m Model) loadCouponsCmd(owner string, seq int, force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		coupons, err := m.coupons.Coupons(ctx, owner, force)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading coupons"}
		}
		return CouponsLoadedMsg{Owner: owner, Coupons: coupons, Seq: seq}
	}
}

// createCouponCmd creates a coupon for the active owner
func (m Model) createCouponCmd(nc domain.NewCoupon) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		created, err := m.coupons.Create(ctx, nc)
		if err != nil {
			return ErrMsg{Err: err, Context: "creating coupon"}
		}
		return CouponCreatedMsg{Coupon: created}
	}
}

// redeemCouponCmd flips a coupon's redeemed flag
func (m Model) redeemCouponCmd(coupon *domain.Coupon, redeemed bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		updated, removed, err := m.coupons.Redeem(ctx, coupon, redeemed)
		if err != nil {
			return MutationFailedMsg{Tab: TabCoupons, ID: coupon.ID, Err: err}
		}
		return CouponRedeemedMsg{ID: coupon.ID, Coupon: updated, Removed: removed}
	}
}

// deleteCouponCmd removes a coupon
func (m Model) deleteCouponCmd(coupon *domain.Coupon) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.coupons.Delete(ctx, coupon); err != nil {
			return MutationFailedMsg{Tab: TabCoupons, ID: coupon.ID, Err: err}
		}
		return CouponDeletedMsg{ID: coupon.ID}
	}
}

// loadProductsCmd fetches the wishlist
func (m Model) loadProductsCmd(seq int, force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		products, err := m.products.Products(ctx, force)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading wishlist"}
		}
		return ProductsLoadedMsg{Products: products, Seq: seq}
	}
}

// createProductCmd creates a wishlist product
func (m Model) createProductCmd(np domain.NewProduct) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		created, err := m.products.Create(ctx, np)
		if err != nil {
			return ErrMsg{Err: err, Context: "creating product"}
		}
		return ProductCreatedMsg{Product: created}
	}
}

// toggleBoughtCmd flips a product's bought flag
func (m Model) toggleBoughtCmd(product *domain.Product) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		updated, err := m.products.ToggleBought(ctx, product)
		if err != nil {
			return MutationFailedMsg{Tab: TabWishlist, ID: product.ID, Err: err}
		}

		kind := domain.InteractionType("")
		if updated.Bought {
			kind = domain.InteractBuyProduct
		}
		return ProductUpdatedMsg{ID: product.ID, Product: updated, Kind: kind}
	}
}

// toggleLikeCmd flips one heart reaction on a product
func (m Model) toggleLikeCmd(product *domain.Product, reactor string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		updated, err := m.products.ToggleLike(ctx, product, reactor)
		if err != nil {
			return MutationFailedMsg{Tab: TabWishlist, ID: product.ID, Err: err}
		}

		kind := domain.InteractionType("")
		switch {
		case updated.LikedByBoth():
			kind = domain.InteractLikeBoth
		case updated.LikeNico || updated.LikeBarbara:
			kind = domain.InteractLikeOne
		}
		return ProductUpdatedMsg{ID: product.ID, Product: updated, Kind: kind}
	}
}

// deleteProductCmd removes a product
func (m Model) deleteProductCmd(product *domain.Product) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.products.Delete(ctx, product.ID); err != nil {
			return MutationFailedMsg{Tab: TabWishlist, ID: product.ID, Err: err}
		}
		return ProductDeletedMsg{ID: product.ID}
	}
}

// loadPetCmd fetches the pet's current state
func (m Model) loadPetCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		pet, err := m.pet.Pet(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading pet"}
		}
		return PetLoadedMsg{Pet: pet}
	}
}

// notifyPetCmd records an app activity against the pet. Failures come
// back as a nil pet and are dropped on the floor.
func (m Model) notifyPetCmd(kind domain.InteractionType) tea.Cmd {
	if kind == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		pet, err := m.pet.Notify(ctx, kind)
		if err != nil {
			return PetNotifiedMsg{Pet: nil}
		}
		return PetNotifiedMsg{Pet: pet}
	}
}

// revealTickCmd schedules the next flicker frame for a session generation
func revealTickCmd(gen int) tea.Cmd {
	return tea.Tick(reveal.TickInterval, func(time.Time) tea.Msg {
		return RevealTickMsg{Gen: gen}
	})
}

// clearStatusCmd expires the status bar message with the given generation
func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusLinger, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
