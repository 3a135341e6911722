package model

import "time"

type Product struct {
	ProductID int64      `json:"id"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
