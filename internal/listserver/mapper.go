package listserver

import (
	"time"

	"github.com/nvidela/duet/internal/domain"
)

func mapMovie(dto movieDTO) *domain.Movie {
	return &domain.Movie{
		ID:      dto.ID,
		APIID:   dto.APIID,
		Title:   dto.Title,
		List:    domain.ListName(dto.List),
		Watched: dto.Watched,
		Poster:  dto.Poster,
	}
}

func mapMovies(dtos []movieDTO) []*domain.Movie {
	movies := make([]*domain.Movie, 0, len(dtos))
	for _, dto := range dtos {
		movies = append(movies, mapMovie(dto))
	}
	return movies
}

func mapCoupon(dto couponDTO) *domain.Coupon {
	c := &domain.Coupon{
		ID:          dto.ID,
		Title:       dto.Title,
		Description: dto.Description,
		Owner:       dto.Owner,
		Redeemed:    dto.Redeemed,
		Reusable:    dto.Reusable,
	}
	if dto.ExpirationDate != "" {
		// Tolerate both full timestamps and bare dates
		if t, err := time.Parse(time.RFC3339, dto.ExpirationDate); err == nil {
			c.ExpiresAt = &t
		} else if t, err := time.Parse("2006-01-02", dto.ExpirationDate); err == nil {
			c.ExpiresAt = &t
		}
	}
	return c
}

func mapCoupons(dtos []couponDTO) []*domain.Coupon {
	coupons := make([]*domain.Coupon, 0, len(dtos))
	for _, dto := range dtos {
		coupons = append(coupons, mapCoupon(dto))
	}
	return coupons
}

func mapProduct(dto productDTO) *domain.Product {
	return &domain.Product{
		ID:          dto.ID,
		Name:        dto.Name,
		Image:       dto.Image,
		Bought:      dto.Bought,
		LikeNico:    dto.LikeNico,
		LikeBarbara: dto.LikeBarbara,
		StoreName:   dto.StoreName,
		StoreLink:   dto.StoreLink,
	}
}

func mapProducts(dtos []productDTO) []*domain.Product {
	products := make([]*domain.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, mapProduct(dto))
	}
	return products
}

func mapPet(dto petDTO) *domain.Pet {
	pet := &domain.Pet{
		ID:              dto.ID,
		Name:            dto.Name,
		Happiness:       dto.Happiness,
		Energy:          dto.Energy,
		Curiosity:       dto.Curiosity,
		LastInteraction: domain.InteractionType(dto.LastInteractionType),
		LastMessage:     dto.LastMessage,
	}
	if t, err := time.Parse(time.RFC3339, dto.LastInteractionAt); err == nil {
		pet.LastInteractionAt = t
	}
	return pet
}

func mapSearchResults(dtos []searchResultDTO) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(dtos))
	for _, dto := range dtos {
		results = append(results, domain.SearchResult{
			APIID:  dto.ID.String(),
			Title:  dto.Title,
			Poster: dto.Poster,
			Kind:   dto.Type,
		})
	}
	return results
}
