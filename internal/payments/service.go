package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/pleko-crm/pleko-crm/internal/accounts"
)

// Invalidator drops cached receivables snapshots after the cash ledger moves.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo        Repository
	accountRepo accounts.Repository
	invalidator Invalidator
}

func NewService(repo Repository, accountRepo accounts.Repository, invalidator Invalidator) *Service {
	return &Service{
		repo:        repo,
		accountRepo: accountRepo,
		invalidator: invalidator,
	}
}

func (s *Service) Create(ctx context.Context, req CreatePaymentRequest, createdBy int64) (*Payment, error) {
	if _, err := s.accountRepo.Get(ctx, req.AccountID); err != nil {
		return nil, fmt.Errorf("verify account: %w", err)
	}

	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("parse payment date: %w", err)
	}

	payment := Payment{
		AccountID:   req.AccountID,
		PaymentDate: paymentDate,
		Amount:      req.Amount,
		Method:      req.Method,
		Reference:   req.Reference,
		Notes:       req.Notes,
		CreatedBy:   createdBy,
	}

	id, err := s.repo.Create(ctx, payment)
	if err != nil {
		return nil, err
	}

	s.bump(ctx)
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdatePaymentRequest) (*Payment, error) {
	updates := map[string]interface{}{}
	if req.PaymentDate != nil {
		paymentDate, err := time.Parse("2006-01-02", *req.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("parse payment date: %w", err)
		}
		updates["payment_date"] = paymentDate
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Method != nil {
		updates["method"] = *req.Method
	}
	if req.Reference != nil {
		updates["reference"] = *req.Reference
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) == 0 {
		return s.repo.Get(ctx, id)
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

func (s *Service) Get(ctx context.Context, id int64) (*Payment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListPaymentsRequest) ([]Payment, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) bump(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	_ = s.invalidator.Invalidate(ctx)
}
