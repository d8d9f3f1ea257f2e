package products

import (
	"context"
	"errors"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	product := Product{
		Name:         req.Name,
		Category:     req.Category,
		UOM:          req.UOM,
		DefaultPrice: req.DefaultPrice,
		DefaultCost:  req.DefaultCost,
	}

	id, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (*Product, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.UOM != nil {
		updates["uom"] = *req.UOM
	}
	if req.DefaultPrice != nil {
		updates["default_price"] = *req.DefaultPrice
	}
	if req.DefaultCost != nil {
		updates["default_cost"] = *req.DefaultCost
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]Product, error) {
	return s.repo.List(ctx, activeOnly)
}

// ProductName satisfies the quick-entry lookup used by order capture.
func (s *Service) ProductName(ctx context.Context, productID int64) (string, error) {
	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

// ResolvePrice returns the agreed client price when one exists, otherwise
// the catalogue default. The boolean reports whether any price was found.
func (s *Service) ResolvePrice(ctx context.Context, accountID, productID int64) (float64, bool, error) {
	cp, err := s.repo.GetClientPrice(ctx, accountID, productID)
	if err == nil {
		return cp.UnitPrice, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, false, fmt.Errorf("resolve client price: %w", err)
	}

	product, err := s.repo.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if product.DefaultPrice <= 0 {
		return 0, false, nil
	}
	return product.DefaultPrice, true, nil
}

func (s *Service) SetClientPrice(ctx context.Context, req SetClientPriceRequest) error {
	if _, err := s.repo.Get(ctx, req.ProductID); err != nil {
		return fmt.Errorf("verify product: %w", err)
	}
	return s.repo.UpsertClientPrice(ctx, ClientPrice{
		AccountID: req.AccountID,
		ProductID: req.ProductID,
		UnitPrice: req.UnitPrice,
	})
}

func (s *Service) ListClientPrices(ctx context.Context, accountID int64) ([]ClientPrice, error) {
	return s.repo.ListClientPrices(ctx, accountID)
}

func (s *Service) DeleteClientPrice(ctx context.Context, accountID, productID int64) error {
	return s.repo.DeleteClientPrice(ctx, accountID, productID)
}
