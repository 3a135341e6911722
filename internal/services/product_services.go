package services

import (
	"context"
	"strings"

	"CartStoreAPI/internal/model"
)

type ProductService struct {
	Repo ProductStore
}

func NewProductService(r ProductStore) *ProductService {
	return &ProductService{Repo: r}
}

func validateProduct(name string, price float64) error {
	var msgs []string
	if strings.TrimSpace(name) == "" {
		msgs = append(msgs, "name can't be blank")
	}
	if price < 0 {
		msgs = append(msgs, "price must be greater than or equal to 0")
	}
	if len(msgs) > 0 {
		return model.Invalid(msgs...)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, name string, price float64) (*model.Product, error) {
	name = strings.TrimSpace(name)
	if err := validateProduct(name, price); err != nil {
		return nil, err
	}
	p := &model.Product{Name: name, Price: price}
	id, err := s.Repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ProductID = id
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	return s.Repo.List(ctx)
}

func (s *ProductService) Update(ctx context.Context, id int64, name string, price float64) (*model.Product, error) {
	name = strings.TrimSpace(name)
	if err := validateProduct(name, price); err != nil {
		return nil, err
	}
	p := &model.Product{ProductID: id, Name: name, Price: price}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}
