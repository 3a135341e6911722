package services

import (
	"context"

	"CartStoreAPI/internal/model"

	"github.com/google/uuid"
)

// SessionService maps an opaque session token to exactly one active cart.
type SessionService struct {
	Carts CartStore
}

func NewSessionService(cs CartStore) *SessionService {
	return &SessionService{Carts: cs}
}

// Resolve returns the active cart for the token, creating both when needed.
// An empty token gets a freshly generated one; the caller must hand the
// returned token back to the client. Abandoned carts never resolve — a
// returning session whose cart was abandoned starts over with an empty one.
func (s *SessionService) Resolve(ctx context.Context, token string) (*model.Cart, string, error) {
	if token == "" {
		token = uuid.NewString()
	}

	cart, err := s.Carts.FindActiveByToken(ctx, token)
	if err != nil {
		if !model.IsNotFound(err) {
			return nil, "", err
		}
		cart, err = s.Carts.Create(ctx, token)
		if err != nil {
			return nil, "", err
		}
	}
	return cart, token, nil
}
