package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pleko-crm/pleko-crm/internal/accounts"
	"github.com/pleko-crm/pleko-crm/internal/ledger"
)

var (
	ErrAccountInactive = errors.New("account is inactive")
	ErrNoAgreedPrice   = errors.New("no agreed price for product")
)

// PriceResolver looks up the per-account agreed price for a product.
type PriceResolver interface {
	ResolvePrice(ctx context.Context, accountID, productID int64) (float64, bool, error)
}

// Invalidator drops cached receivables snapshots after the sales ledger moves.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo        Repository
	accountRepo accounts.Repository
	prices      PriceResolver
	invalidator Invalidator
}

func NewService(repo Repository, accountRepo accounts.Repository, prices PriceResolver, invalidator Invalidator) *Service {
	return &Service{
		repo:        repo,
		accountRepo: accountRepo,
		prices:      prices,
		invalidator: invalidator,
	}
}

// deriveTotals keeps the stored amounts consistent with quantity and price.
func deriveTotals(o *Order) {
	o.NetAmount = o.Quantity * o.UnitPrice
	o.VATAmount = o.NetAmount * ledger.VATRate
	o.GrossAmount = o.NetAmount + o.VATAmount
}

func (s *Service) Create(ctx context.Context, req CreateOrderRequest, createdBy int64) (*Order, error) {
	account, err := s.accountRepo.Get(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("verify account: %w", err)
	}
	if !account.IsActive {
		return nil, ErrAccountInactive
	}

	txDate, err := time.Parse("2006-01-02", req.TransactionDate)
	if err != nil {
		return nil, fmt.Errorf("parse transaction date: %w", err)
	}

	unitPrice := req.UnitPrice
	if unitPrice == 0 && req.ProductID != nil && s.prices != nil {
		price, ok, err := s.prices.ResolvePrice(ctx, req.AccountID, *req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve price: %w", err)
		}
		if ok {
			unitPrice = price
		}
	}

	order := Order{
		AccountID:       req.AccountID,
		TransactionDate: txDate,
		ProductID:       req.ProductID,
		ProductName:     req.ProductName,
		Quantity:        req.Quantity,
		UnitPrice:       unitPrice,
		UnitCost:        req.UnitCost,
		Notes:           req.Notes,
		CreatedBy:       createdBy,
	}
	deriveTotals(&order)

	id, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	s.bump(ctx)
	return s.repo.Get(ctx, id)
}

// QuickCreate is the one-tap entry path: dated today, priced from the
// account's agreed pricing, cost backfilled later via Update.
func (s *Service) QuickCreate(ctx context.Context, req QuickCreateOrderRequest, productName string, createdBy int64) (*Order, error) {
	price, ok, err := s.prices.ResolvePrice(ctx, req.AccountID, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("resolve price: %w", err)
	}
	if !ok {
		return nil, ErrNoAgreedPrice
	}

	productID := req.ProductID
	return s.Create(ctx, CreateOrderRequest{
		AccountID:       req.AccountID,
		TransactionDate: time.Now().UTC().Format("2006-01-02"),
		ProductID:       &productID,
		ProductName:     productName,
		Quantity:        req.Quantity,
		UnitPrice:       price,
	}, createdBy)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateOrderRequest) (*Order, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.TransactionDate != nil {
		txDate, err := time.Parse("2006-01-02", *req.TransactionDate)
		if err != nil {
			return nil, fmt.Errorf("parse transaction date: %w", err)
		}
		updates["transaction_date"] = txDate
		existing.TransactionDate = txDate
	}
	if req.ProductID != nil {
		updates["product_id"] = *req.ProductID
		existing.ProductID = req.ProductID
	}
	if req.ProductName != nil {
		updates["product_name"] = *req.ProductName
		existing.ProductName = *req.ProductName
	}
	if req.Quantity != nil {
		existing.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		existing.UnitPrice = *req.UnitPrice
	}
	if req.UnitCost != nil {
		existing.UnitCost = *req.UnitCost
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
		existing.Notes = req.Notes
	}

	deriveTotals(existing)
	if req.Quantity != nil || req.UnitPrice != nil || req.UnitCost != nil {
		updates["quantity"] = existing.Quantity
		updates["unit_price"] = existing.UnitPrice
		updates["unit_cost"] = existing.UnitCost
		updates["net_amount"] = existing.NetAmount
		updates["vat_amount"] = existing.VATAmount
		updates["gross_amount"] = existing.GrossAmount
	}

	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	s.bump(ctx)
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) bump(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	// Cache invalidation failure must not fail the write.
	_ = s.invalidator.Invalidate(ctx)
}
