package services

import (
	"context"
	"time"

	"CartStoreAPI/internal/model"
)

// ProductStore is the catalog capability the services need. Implemented by
// repository.ProductRepository.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id int64) error
}

// CartStore is the cart/ledger capability. Item mutations must commit the
// ledger write, the total recompute and the interaction timestamp as one
// unit. Implemented by repository.CartRepository.
type CartStore interface {
	FindActiveByToken(ctx context.Context, token string) (*model.Cart, error)
	Create(ctx context.Context, token string) (*model.Cart, error)
	GetByID(ctx context.Context, cartID int64) (*model.Cart, error)
	Items(ctx context.Context, cartID int64) ([]model.CartItem, error)
	SetItem(ctx context.Context, cartID, productID int64, qty int) error
	IncrementItem(ctx context.Context, cartID, productID int64, delta int) (int, error)
	RemoveItem(ctx context.Context, cartID, productID int64) (bool, error)
	MarkAbandoned(ctx context.Context, cartID int64) error
	MarkAbandonedBefore(ctx context.Context, cutoff, at time.Time) (int64, error)
	PurgeAbandonedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
