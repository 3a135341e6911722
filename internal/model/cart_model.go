package model

import "time"

// Cart represents a row in the carts table. AbandonedAt is nil while the
// cart is active.
type Cart struct {
	CartID            int64      `json:"id"`
	SessionID         string     `json:"session_id"`
	TotalPrice        float64    `json:"total_price"`
	LastInteractionAt time.Time  `json:"last_interaction_at"`
	AbandonedAt       *time.Time `json:"abandoned_at,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
}

func (c *Cart) Abandoned() bool {
	return c.AbandonedAt != nil
}

func (c *Cart) Active() bool {
	return c.AbandonedAt == nil
}

// CartItem is what the API exposes per product line (joined with products)
type CartItem struct {
	ProductID  int64   `json:"id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// CartResponse is returned by every cart endpoint
type CartResponse struct {
	ID         int64      `json:"id"`
	Products   []CartItem `json:"products"`
	TotalPrice float64    `json:"total_price"`
}

// SweepReport summarizes one sweeper run.
type SweepReport struct {
	Marked int64 `json:"marked"`
	Purged int64 `json:"purged"`
}
