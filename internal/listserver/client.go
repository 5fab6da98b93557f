package listserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/nvidela/duet/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Duet/1.0"
)

// Client implements domain.MovieRepository, domain.CouponRepository,
// domain.ProductRepository, domain.PetRepository, and
// domain.SearchRepository against the shared-lists REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new list server client
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// doRequest performs an HTTP request and maps failures to sentinel errors
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("list server request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("list server request failed", "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		c.logger.Warn("list server rejected input", "status", resp.StatusCode, "body", string(respBody))
		return nil, domain.ErrInvalidInput
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Error("list server request error", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return respBody, nil
}

// doJSON sends an optional JSON payload and decodes the JSON response into dest
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload, dest any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	respBody, err := c.doRequest(ctx, method, path, query, body, contentType)
	if err != nil {
		return err
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, dest); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(respBody))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// === Movies ===

// GetMovies returns all movies on a list
func (c *Client) GetMovies(ctx context.Context, list domain.ListName) ([]*domain.Movie, error) {
	var dtos []movieDTO
	path := fmt.Sprintf("/movies/%s", url.PathEscape(string(list)))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &dtos); err != nil {
		return nil, err
	}
	return mapMovies(dtos), nil
}

// AddMovie adds a movie to a list
func (c *Client) AddMovie(ctx context.Context, m domain.NewMovie) (*domain.Movie, error) {
	payload := movieCreateDTO{
		Title:  m.Title,
		APIID:  m.APIID,
		List:   string(m.List),
		Poster: m.Poster,
	}
	var dto movieDTO
	if err := c.doJSON(ctx, http.MethodPost, "/movies", nil, payload, &dto); err != nil {
		return nil, err
	}
	return mapMovie(dto), nil
}

// SetWatched updates the watched flag for a movie
func (c *Client) SetWatched(ctx context.Context, id string, watched bool) (*domain.Movie, error) {
	payload := watchedPatchDTO{Watched: watched}
	var dto movieDTO
	path := fmt.Sprintf("/movies/%s/watched", url.PathEscape(id))
	if err := c.doJSON(ctx, http.MethodPatch, path, nil, payload, &dto); err != nil {
		return nil, err
	}
	return mapMovie(dto), nil
}

// DeleteMovie removes a movie. An id that is already gone counts as success.
func (c *Client) DeleteMovie(ctx context.Context, id string) error {
	path := fmt.Sprintf("/movies/%s", url.PathEscape(id))
	_, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil, "")
	if err == domain.ErrNotFound {
		return nil
	}
	return err
}

// === Coupons ===

// GetCoupons returns all coupons held by an owner
func (c *Client) GetCoupons(ctx context.Context, owner string) ([]*domain.Coupon, error) {
	query := url.Values{}
	query.Set("owner", owner)
	var dtos []couponDTO
	if err := c.doJSON(ctx, http.MethodGet, "/coupons", query, nil, &dtos); err != nil {
		return nil, err
	}
	return mapCoupons(dtos), nil
}

// CreateCoupon creates a coupon
func (c *Client) CreateCoupon(ctx context.Context, nc domain.NewCoupon) (*domain.Coupon, error) {
	payload := couponCreateDTO{
		Title:       nc.Title,
		Description: nc.Description,
		Owner:       nc.Owner,
		Reusable:    nc.Reusable,
	}
	if nc.ExpiresAt != nil {
		payload.ExpirationDate = nc.ExpiresAt.Format(time.RFC3339)
	}
	var dto couponDTO
	if err := c.doJSON(ctx, http.MethodPost, "/coupons", nil, payload, &dto); err != nil {
		return nil, err
	}
	return mapCoupon(dto), nil
}

// SetRedeemed updates the redeemed flag. The bool result reports whether
// the server deleted the coupon (non-reusable redemption) instead of
// returning an updated object.
func (c *Client) SetRedeemed(ctx context.Context, id string, redeemed bool) (*domain.Coupon, bool, error) {
	payload := redeemPatchDTO{Redeemed: redeemed}
	var dto redeemResultDTO
	path := fmt.Sprintf("/coupons/%s/redeem", url.PathEscape(id))
	if err := c.doJSON(ctx, http.MethodPatch, path, nil, payload, &dto); err != nil {
		return nil, false, err
	}
	if dto.Deleted {
		return nil, true, nil
	}
	return mapCoupon(dto.couponDTO), false, nil
}

// DeleteCoupon removes a coupon
func (c *Client) DeleteCoupon(ctx context.Context, id string) error {
	path := fmt.Sprintf("/coupons/%s", url.PathEscape(id))
	_, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil, "")
	if err == domain.ErrNotFound {
		return nil
	}
	return err
}

// === Products ===

// GetProducts returns the full wishlist
func (c *Client) GetProducts(ctx context.Context) ([]*domain.Product, error) {
	var dtos []productDTO
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, nil, &dtos); err != nil {
		return nil, err
	}
	return mapProducts(dtos), nil
}

// CreateProduct creates a product. The body is multipart form data so an
// optional local image file can ride along with the fields.
func (c *Client) CreateProduct(ctx context.Context, p domain.NewProduct) (*domain.Product, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("name", p.Name); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if p.StoreName != "" {
		if err := w.WriteField("storeName", p.StoreName); err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
	}
	if p.StoreLink != "" {
		if err := w.WriteField("storeLink", p.StoreLink); err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
	}

	switch {
	case p.ImagePath != "":
		f, err := os.Open(p.ImagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()
		part, err := w.CreateFormFile("image", filepath.Base(p.ImagePath))
		if err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
	case p.ImageURL != "":
		if err := w.WriteField("imageUrl", p.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/products", nil, &buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var dto productDTO
	if err := json.Unmarshal(respBody, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return mapProduct(dto), nil
}

// UpdateProduct applies a partial update
func (c *Client) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	payload := productPatchDTO{
		Name:        patch.Name,
		Image:       patch.Image,
		Bought:      patch.Bought,
		LikeNico:    patch.LikeNico,
		LikeBarbara: patch.LikeBarbara,
	}
	var dto productDTO
	path := fmt.Sprintf("/products/%s", url.PathEscape(id))
	if err := c.doJSON(ctx, http.MethodPatch, path, nil, payload, &dto); err != nil {
		return nil, err
	}
	return mapProduct(dto), nil
}

// DeleteProduct removes a product
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	path := fmt.Sprintf("/products/%s", url.PathEscape(id))
	_, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil, "")
	if err == domain.ErrNotFound {
		return nil
	}
	return err
}

// === Pet ===

// GetPet returns the pet's current state
func (c *Client) GetPet(ctx context.Context) (*domain.Pet, error) {
	var dto petDTO
	if err := c.doJSON(ctx, http.MethodGet, "/pets", nil, nil, &dto); err != nil {
		return nil, err
	}
	return mapPet(dto), nil
}

// Interact records an app activity against the pet
func (c *Client) Interact(ctx context.Context, kind domain.InteractionType) (*domain.Pet, error) {
	var dto petDTO
	path := fmt.Sprintf("/pets/interact/%s", url.PathEscape(string(kind)))
	if err := c.doJSON(ctx, http.MethodPost, path, nil, nil, &dto); err != nil {
		return nil, err
	}
	return mapPet(dto), nil
}

// === Search ===

// SearchTitles queries the external metadata provider
func (c *Client) SearchTitles(ctx context.Context, query string) ([]domain.SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	var dtos []searchResultDTO
	if err := c.doJSON(ctx, http.MethodGet, "/tmdb/search", q, nil, &dtos); err != nil {
		return nil, err
	}
	return mapSearchResults(dtos), nil
}
