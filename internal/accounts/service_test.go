package accounts

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryAccountRepo struct {
	accounts map[int64]*Account
	nextID   int64
}

func newMemoryAccountRepo() *memoryAccountRepo {
	return &memoryAccountRepo{accounts: make(map[int64]*Account)}
}

func (r *memoryAccountRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, r)
}

func (r *memoryAccountRepo) Get(ctx context.Context, id int64) (*Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memoryAccountRepo) GetByName(ctx context.Context, name string) (*Account, error) {
	for _, a := range r.accounts {
		if strings.EqualFold(a.Name, name) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryAccountRepo) List(ctx context.Context, req ListAccountsRequest) ([]Account, int, error) {
	var out []Account
	for _, a := range r.accounts {
		if req.IsActive != nil && a.IsActive != *req.IsActive {
			continue
		}
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (r *memoryAccountRepo) Create(ctx context.Context, account Account) (int64, error) {
	r.nextID++
	account.ID = r.nextID
	r.accounts[account.ID] = &account
	return account.ID, nil
}

func (r *memoryAccountRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	a, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}
	for column, value := range updates {
		switch column {
		case "name":
			a.Name = value.(string)
		case "payment_type":
			a.PaymentType = PaymentType(value.(string))
		case "credit_days":
			a.CreditDays = value.(int)
		case "credit_limit":
			a.CreditLimit = value.(float64)
		case "is_active":
			a.IsActive = value.(bool)
		}
	}
	return nil
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryAccountRepo())

	account, err := svc.Create(ctx, CreateAccountRequest{
		Name:        "Readymix North",
		PaymentType: "Credit Customer",
		CreditDays:  45,
		CreditLimit: 250000,
	}, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), account.ID)
	require.Equal(t, 45, account.CreditDays)
	require.True(t, account.IsActive)
}

func TestCreateAccountDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryAccountRepo())

	_, err := svc.Create(ctx, CreateAccountRequest{Name: "Precast Co", PaymentType: "Cash"}, 1)
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateAccountRequest{Name: "precast co", PaymentType: "Cash"}, 1)
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateCashAccountClearsCreditDays(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryAccountRepo())

	account, err := svc.Create(ctx, CreateAccountRequest{
		Name:        "Walk-in",
		PaymentType: "Cash",
		CreditDays:  30,
	}, 1)
	require.NoError(t, err)
	require.Equal(t, 0, account.CreditDays)
}

func TestUpdateAccountRename(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryAccountRepo()
	svc := NewService(repo)

	created, err := svc.Create(ctx, CreateAccountRequest{Name: "Old Name", PaymentType: "Cash"}, 1)
	require.NoError(t, err)

	name := "New Name"
	updated, err := svc.Update(ctx, created.ID, UpdateAccountRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.Name)
	// Renaming updates the directory row only; children reference the id.
	require.Equal(t, created.ID, updated.ID)
}

func TestUpdateAccountNoChanges(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryAccountRepo())

	created, err := svc.Create(ctx, CreateAccountRequest{Name: "Stable", PaymentType: "Cash"}, 1)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateAccountRequest{})
	require.NoError(t, err)
	require.Equal(t, created.Name, updated.Name)
}

func TestUpdateAccountNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryAccountRepo())

	name := "x"
	_, err := svc.Update(ctx, 99, UpdateAccountRequest{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}
