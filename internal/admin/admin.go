// Package admin covers the operations panel: its own login context plus
// notification broadcast, withdrawal processing, and return handling. The
// admin token is stored under a separate key so an admin session never
// collides with a brand or consumer session in the same store.
package admin

import "time"

// Withdrawal request statuses.
const (
	WithdrawalPending   = "pending"
	WithdrawalCompleted = "completed"
)

// Return request statuses.
const (
	ReturnPending  = "pending"
	ReturnApproved = "approved"
	ReturnRejected = "rejected"
)

// Notification is a broadcast message sent to users or brands.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Audience  string    `json:"audience"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationDraft is the payload for sending a new notification.
// Audience is "users", "brands", or "all".
type NotificationDraft struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Audience string `json:"audience"`
}

// Withdrawal is a brand payout request awaiting processing.
type Withdrawal struct {
	ID          string     `json:"id"`
	BrandID     int        `json:"brand_id"`
	BrandName   string     `json:"brand_name"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Return is a consumer return request awaiting a decision.
type Return struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	OrderItemID string    `json:"order_item_id"`
	UserID      string    `json:"user_id"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
