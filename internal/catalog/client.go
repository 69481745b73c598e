package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"moda-marketplace/client/internal/api"
)

// Client wraps the catalog endpoints.
type Client struct {
	api *api.Client
}

// NewClient returns a catalog client on top of the shared API client.
func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

// BrandProducts lists the authenticated brand's products.
func (c *Client) BrandProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.api.Get(ctx, "/api/v1/brands/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BrandProduct fetches one of the authenticated brand's products by ID.
func (c *Client) BrandProduct(ctx context.Context, productID string) (*Product, error) {
	var out Product
	if err := c.api.Get(ctx, "/api/v1/brands/products/"+url.PathEscape(productID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct creates a product for the authenticated brand.
func (c *Client) CreateProduct(ctx context.Context, req ProductCreate) (*Product, error) {
	var out Product
	if err := c.api.Post(ctx, "/api/v1/brands/products", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct partially updates a product; only non-nil fields change.
func (c *Client) UpdateProduct(ctx context.Context, productID string, req ProductUpdate) (*Product, error) {
	var out Product
	if err := c.api.Put(ctx, "/api/v1/brands/products/"+url.PathEscape(productID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchOptions narrow a public product search.
type SearchOptions struct {
	CategoryID string
	StyleID    string
	Limit      int
}

// Search runs a public product search for query.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) ([]Product, error) {
	q := url.Values{}
	q.Set("q", query)
	if opts.CategoryID != "" {
		q.Set("category_id", opts.CategoryID)
	}
	if opts.StyleID != "" {
		q.Set("style_id", opts.StyleID)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	var out []Product
	if err := c.api.Get(ctx, "/api/v1/products/search?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Styles lists all style tags.
func (c *Client) Styles(ctx context.Context) ([]Style, error) {
	var out []Style
	if err := c.api.Get(ctx, "/api/v1/styles", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories lists all product categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.api.Get(ctx, "/api/v1/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Brands lists all public brands.
func (c *Client) Brands(ctx context.Context) ([]Brand, error) {
	var out []Brand
	if err := c.api.Get(ctx, "/api/v1/brands", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OnboardingChoices is everything the onboarding wizard needs up front.
type OnboardingChoices struct {
	Styles     []Style
	Categories []Category
	Brands     []Brand
}

// OnboardingChoices fetches styles, categories, and brands concurrently; the
// three requests are independent and unordered. The first error wins.
func (c *Client) OnboardingChoices(ctx context.Context) (*OnboardingChoices, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var choices OnboardingChoices
	errc := make(chan error, 3)
	go func() {
		var err error
		choices.Styles, err = c.Styles(ctx)
		errc <- err
	}()
	go func() {
		var err error
		choices.Categories, err = c.Categories(ctx)
		errc <- err
	}()
	go func() {
		var err error
		choices.Brands, err = c.Brands(ctx)
		errc <- err
	}()
	for i := 0; i < 3; i++ {
		if err := <-errc; err != nil {
			cancel()
			// Drain the remaining goroutines before returning so none write
			// to choices after we leave.
			for j := i + 1; j < 3; j++ {
				<-errc
			}
			return nil, fmt.Errorf("catalog: onboarding choices: %w", err)
		}
	}
	return &choices, nil
}

// ToggleFavorite flips the liked state of a product for the current user and
// returns the new state.
func (c *Client) ToggleFavorite(ctx context.Context, productID string) (liked bool, err error) {
	req := struct {
		ProductID string `json:"product_id"`
	}{ProductID: productID}
	var out struct {
		Message string `json:"message"`
		Liked   bool   `json:"liked"`
	}
	if err := c.api.Post(ctx, "/api/v1/user/favorites/toggle", req, &out); err != nil {
		return false, err
	}
	return out.Liked, nil
}

// Favorites lists the current user's liked products.
func (c *Client) Favorites(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.api.Get(ctx, "/api/v1/user/favorites", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Recommendations lists products recommended for the current user.
func (c *Client) Recommendations(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.api.Get(ctx, "/api/v1/recommendations/for_user", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecommendationsForFriend lists products recommended as gifts for a friend,
// picked against the friend's profile rather than the current user's.
func (c *Client) RecommendationsForFriend(ctx context.Context, friendID string) ([]Product, error) {
	var out []Product
	if err := c.api.Get(ctx, "/api/v1/recommendations/for_friend/"+url.PathEscape(friendID), &out); err != nil {
		return nil, err
	}
	return out, nil
}
