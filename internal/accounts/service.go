package accounts

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

func (s *Service) Create(ctx context.Context, req CreateAccountRequest, createdBy int64) (*Account, error) {
	existing, err := s.repo.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check existing account: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account name already taken", ErrAlreadyExists)
	}

	account := Account{
		Name:         req.Name,
		Location:     req.Location,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		PaymentType:  PaymentType(req.PaymentType),
		CreditDays:   req.CreditDays,
		CreditLimit:  req.CreditLimit,
		IsActive:     true,
		CreatedBy:    createdBy,
	}
	// Cash accounts carry no credit terms.
	if account.PaymentType == PaymentTypeCash {
		account.CreditDays = 0
	}

	var id int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		var err error
		id, err = repo.Create(ctx, account)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	account.ID = id
	return &account, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateAccountRequest) (*Account, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.ContactName != nil {
		updates["contact_name"] = *req.ContactName
	}
	if req.ContactPhone != nil {
		updates["contact_phone"] = *req.ContactPhone
	}
	if req.PaymentType != nil {
		updates["payment_type"] = *req.PaymentType
		if PaymentType(*req.PaymentType) == PaymentTypeCash && req.CreditDays == nil {
			updates["credit_days"] = 0
		}
	}
	if req.CreditDays != nil {
		updates["credit_days"] = *req.CreditDays
	}
	if req.CreditLimit != nil {
		updates["credit_limit"] = *req.CreditLimit
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return existing, nil
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		return repo.Update(ctx, id, updates)
	})
	if err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}

	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Account, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListAccountsRequest) ([]Account, int, error) {
	return s.repo.List(ctx, req)
}
