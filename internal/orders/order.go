// Package orders provides the order operations shared by the brand dashboard
// and the consumer app, plus client-side aggregation for the stats view.
package orders

import "time"

// Order statuses as reported by the backend.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
	StatusReturned  = "returned"
)

// Delivery describes the shipping terms attached to an order item.
type Delivery struct {
	Cost           float64 `json:"cost"`
	EstimatedTime  string  `json:"estimatedTime"`
	TrackingNumber string  `json:"tracking_number,omitempty"`
}

// Item is a single line of an order. Product details are denormalized at
// purchase time so the order survives later catalog edits.
type Item struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	Size         string   `json:"size"`
	Image        string   `json:"image,omitempty"`
	Delivery     Delivery `json:"delivery"`
	SKU          string   `json:"sku,omitempty"`
	BrandName    string   `json:"brand_name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Color        string   `json:"color,omitempty"`
	Materials    string   `json:"materials,omitempty"`
	Images       []string `json:"images,omitempty"`
	ReturnPolicy string   `json:"return_policy,omitempty"`
	ProductID    string   `json:"product_id,omitempty"`
}

// Order is the wire representation of a placed order.
type Order struct {
	ID             string    `json:"id"`
	Number         string    `json:"number"`
	TotalAmount    float64   `json:"total_amount"`
	Currency       string    `json:"currency"`
	Date           time.Time `json:"date"`
	Status         string    `json:"status"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	TrackingLink   string    `json:"tracking_link,omitempty"`
	Items          []Item    `json:"items"`

	DeliveryFullName   string `json:"delivery_full_name,omitempty"`
	DeliveryEmail      string `json:"delivery_email,omitempty"`
	DeliveryPhone      string `json:"delivery_phone,omitempty"`
	DeliveryAddress    string `json:"delivery_address,omitempty"`
	DeliveryCity       string `json:"delivery_city,omitempty"`
	DeliveryPostalCode string `json:"delivery_postal_code,omitempty"`
}

// TrackingUpdate carries a partial update of an order's tracking info.
// Nil fields are left untouched by the backend.
type TrackingUpdate struct {
	TrackingNumber *string `json:"tracking_number,omitempty"`
	TrackingLink   *string `json:"tracking_link,omitempty"`
}
