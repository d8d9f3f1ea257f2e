package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pleko-crm/pleko-crm/internal/shared"
)

type memoryAuthRepo struct {
	users  map[int64]*User
	nextID int64
}

func newMemoryAuthRepo() *memoryAuthRepo {
	return &memoryAuthRepo{users: make(map[int64]*User)}
}

func (r *memoryAuthRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryAuthRepo) Get(ctx context.Context, id int64) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryAuthRepo) Create(ctx context.Context, user User) (int64, error) {
	if _, err := r.FindByEmail(ctx, user.Email); err == nil {
		return 0, ErrEmailTaken
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = &user
	return user.ID, nil
}

func (r *memoryAuthRepo) ListPending(ctx context.Context) ([]User, error) {
	var out []User
	for _, u := range r.users {
		if !u.IsApproved {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *memoryAuthRepo) Approve(ctx context.Context, id int64) error {
	u, ok := r.users[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.IsApproved = true
	return nil
}

func TestRegisterStartsUnapproved(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryAuthRepo())

	user, err := svc.Register(ctx, "sales@pleko.example", "supersecret", "Sales Rep")
	require.NoError(t, err)
	require.False(t, user.IsApproved)
	require.Equal(t, RoleUser, user.Role)
	require.NotEqual(t, "supersecret", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryAuthRepo())

	_, err := svc.Register(ctx, "sales@pleko.example", "supersecret", "Sales Rep")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "SALES@pleko.example", "othersecret", "Other Rep")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticateUnapprovedRejected(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryAuthRepo())

	_, err := svc.Register(ctx, "sales@pleko.example", "supersecret", "Sales Rep")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "sales@pleko.example", "supersecret")
	require.ErrorIs(t, err, shared.ErrNotApproved)
}

func TestAuthenticateAfterApproval(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryAuthRepo()
	svc := NewService(repo)

	registered, err := svc.Register(ctx, "sales@pleko.example", "supersecret", "Sales Rep")
	require.NoError(t, err)

	_, err = svc.Approve(ctx, registered.ID)
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "sales@pleko.example", "supersecret")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryAuthRepo())

	registered, err := svc.Register(ctx, "sales@pleko.example", "supersecret", "Sales Rep")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, registered.ID)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "sales@pleko.example", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@pleko.example", "supersecret")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestInitials(t *testing.T) {
	u := &User{DisplayName: "Maya Chen"}
	require.Equal(t, "MC", u.Initials())

	u = &User{DisplayName: "Plato"}
	require.Equal(t, "P", u.Initials())
}
