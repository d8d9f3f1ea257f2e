package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pleko-crm/pleko-crm/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates an unapproved profile. Someone with the admin role has to
// approve it before the account can log in.
func (s *Service) Register(ctx context.Context, email, password, displayName string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         RoleUser,
	}
	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Authenticate validates email/password credentials. Unapproved profiles are
// rejected with a distinct error so the client can explain the wait.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsApproved {
		return nil, shared.ErrNotApproved
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListPending(ctx context.Context) ([]User, error) {
	return s.repo.ListPending(ctx)
}

func (s *Service) Approve(ctx context.Context, id int64) (*User, error) {
	if err := s.repo.Approve(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}
