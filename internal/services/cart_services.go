package services

import (
	"context"

	"CartStoreAPI/internal/model"
)

// CartService owns a cart's ledger. Every mutation goes ledger write ->
// total recompute -> touch inside one storage transaction, so no reader of
// the cart observes a total that is stale against its items.
type CartService struct {
	Carts    CartStore
	Products ProductStore
}

func NewCartService(cs CartStore, ps ProductStore) *CartService {
	return &CartService{Carts: cs, Products: ps}
}

// SetItem writes an exact quantity for the product, replacing any existing
// entry. This is the create/set path: setting 1 then 3 leaves quantity 3.
func (s *CartService) SetItem(ctx context.Context, cartID, productID int64, qty int) (*model.CartResponse, error) {
	if qty <= 0 {
		return nil, model.Invalid("quantity must be greater than 0")
	}
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.Carts.SetItem(ctx, cartID, productID, qty); err != nil {
		return nil, err
	}
	return s.Get(ctx, cartID)
}

// AddItem adds delta to the product's quantity, starting at 0 when the
// entry is new. This is the add-quantity path: adding 1 then 3 leaves 4.
// Validation applies to the resulting quantity, not the delta, so a
// negative or zero delta is fine as long as the result stays positive.
func (s *CartService) AddItem(ctx context.Context, cartID, productID int64, delta int) (*model.CartResponse, error) {
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if _, err := s.Carts.IncrementItem(ctx, cartID, productID, delta); err != nil {
		return nil, err
	}
	return s.Get(ctx, cartID)
}

// RemoveItem deletes the product's ledger entry. Removing a product that is
// not in the cart is a not-found for the caller; the cart stays untouched.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID int64) (*model.CartResponse, error) {
	existed, err := s.Carts.RemoveItem(ctx, cartID, productID)
	if err != nil {
		return nil, err
	}
	if !existed {
		return nil, model.NotFound("product in cart")
	}
	return s.Get(ctx, cartID)
}

// Get builds the read view: items with live prices plus the cached total.
func (s *CartService) Get(ctx context.Context, cartID int64) (*model.CartResponse, error) {
	cart, err := s.Carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	items, err := s.Carts.Items(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return &model.CartResponse{
		ID:         cart.CartID,
		Products:   items,
		TotalPrice: cart.TotalPrice,
	}, nil
}

// MarkAbandoned transitions a cart to abandoned outside the sweeper.
// Idempotent.
func (s *CartService) MarkAbandoned(ctx context.Context, cartID int64) error {
	if _, err := s.Carts.GetByID(ctx, cartID); err != nil {
		return err
	}
	return s.Carts.MarkAbandoned(ctx, cartID)
}
