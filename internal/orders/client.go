package orders

import (
	"context"
	"net/url"

	"moda-marketplace/client/internal/api"
)

// Client wraps the order endpoints of the marketplace API.
type Client struct {
	api *api.Client
}

func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

// BrandOrders lists all orders containing products of the authenticated brand.
func (c *Client) BrandOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.api.Get(ctx, "/api/v1/brands/orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Orders lists the authenticated consumer's own orders.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.api.Get(ctx, "/api/v1/orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTracking sets the tracking number and/or link on a brand order.
func (c *Client) UpdateTracking(ctx context.Context, orderID string, upd TrackingUpdate) error {
	return c.api.Put(ctx, "/api/v1/brands/orders/"+url.PathEscape(orderID)+"/tracking", upd, nil)
}

// UpdateItemSKU assigns the stock keeping unit to an order item. The backend
// rejects the call once a SKU has been assigned, so callers should treat a
// 400 as a terminal state rather than retrying with a different value.
func (c *Client) UpdateItemSKU(ctx context.Context, orderItemID, sku string) error {
	req := struct {
		SKU string `json:"sku"`
	}{SKU: sku}
	return c.api.Put(ctx, "/api/v1/brands/order-items/"+url.PathEscape(orderItemID)+"/sku", req, nil)
}
