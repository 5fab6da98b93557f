package listserver

import "encoding/json"

// Wire shapes for the shared-lists backend. The server keys documents by
// Mongo-style "_id" and omits optional fields entirely.

type movieDTO struct {
	ID      string `json:"_id"`
	APIID   string `json:"apiId"`
	Title   string `json:"title"`
	List    string `json:"list"`
	Watched bool   `json:"watched"`
	Poster  string `json:"poster,omitempty"`
}

type movieCreateDTO struct {
	Title  string `json:"title"`
	APIID  string `json:"apiId"`
	List   string `json:"list"`
	Poster string `json:"poster,omitempty"`
}

type watchedPatchDTO struct {
	Watched bool `json:"watched"`
}

type couponDTO struct {
	ID             string `json:"_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Owner          string `json:"owner"`
	Redeemed       bool   `json:"redeemed"`
	Reusable       bool   `json:"reusable"`
	ExpirationDate string `json:"expirationDate,omitempty"`
}

type couponCreateDTO struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Owner          string `json:"owner"`
	Reusable       bool   `json:"reusable"`
	ExpirationDate string `json:"expirationDate,omitempty"`
}

type redeemPatchDTO struct {
	Redeemed bool `json:"redeemed"`
}

// redeemResultDTO is either a full coupon or a deletion marker, depending
// on whether the server removed a non-reusable coupon on redemption.
type redeemResultDTO struct {
	couponDTO
	Deleted bool `json:"deleted,omitempty"`
}

type productDTO struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Bought      bool   `json:"bought"`
	LikeNico    bool   `json:"likeNico"`
	LikeBarbara bool   `json:"likeBarbara"`
	StoreName   string `json:"storeName,omitempty"`
	StoreLink   string `json:"storeLink,omitempty"`
}

type productPatchDTO struct {
	Name        *string `json:"name,omitempty"`
	Image       *string `json:"image,omitempty"`
	Bought      *bool   `json:"bought,omitempty"`
	LikeNico    *bool   `json:"likeNico,omitempty"`
	LikeBarbara *bool   `json:"likeBarbara,omitempty"`
}

type petDTO struct {
	ID                  string `json:"_id"`
	Name                string `json:"name"`
	Happiness           int    `json:"happiness"`
	Energy              int    `json:"energy"`
	Curiosity           int    `json:"curiosity"`
	LastInteractionAt   string `json:"lastInteractionAt"`
	LastInteractionType string `json:"lastInteractionType"`
	LastMessage         string `json:"lastMessage"`
}

// searchResultDTO carries external metadata results; the provider uses
// numeric IDs so the field is decoded as json.Number.
type searchResultDTO struct {
	ID     json.Number `json:"id"`
	Title  string      `json:"title"`
	Poster string      `json:"poster,omitempty"`
	Type   string      `json:"type"`
}
