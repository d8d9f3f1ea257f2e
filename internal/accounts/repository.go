package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pleko-crm/pleko-crm/internal/platform/db"
)

var (
	ErrNotFound      = errors.New("account not found")
	ErrAlreadyExists = errors.New("account already exists")
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Account, error)
	GetByName(ctx context.Context, name string) (*Account, error)
	List(ctx context.Context, req ListAccountsRequest) ([]Account, int, error)
	Create(ctx context.Context, account Account) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const accountColumns = `id, name, location, contact_name, contact_phone, payment_type,
	credit_days, credit_limit, ai_summary, ai_sentiment, is_active, created_by, created_at, updated_at`

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(
		&a.ID, &a.Name, &a.Location, &a.ContactName, &a.ContactPhone, &a.PaymentType,
		&a.CreditDays, &a.CreditLimit, &a.AISummary, &a.AISentiment, &a.IsActive,
		&a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Account, error) {
	query := fmt.Sprintf("SELECT %s FROM accounts WHERE id = $1", accountColumns)
	return scanAccount(r.db.QueryRow(ctx, query, id))
}

func (r *repository) GetByName(ctx context.Context, name string) (*Account, error) {
	query := fmt.Sprintf("SELECT %s FROM accounts WHERE lower(name) = lower($1)", accountColumns)
	return scanAccount(r.db.QueryRow(ctx, query, name))
}

func (r *repository) List(ctx context.Context, req ListAccountsRequest) ([]Account, int, error) {
	conditions := []string{"1=1"}
	var args []interface{}
	argPos := 1

	if req.Search != nil && *req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argPos))
		args = append(args, "%"+*req.Search+"%")
		argPos++
	}
	if req.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *req.IsActive)
		argPos++
	}
	if req.Sentiment != nil {
		conditions = append(conditions, fmt.Sprintf("ai_sentiment = $%d", argPos))
		args = append(args, *req.Sentiment)
		argPos++
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM accounts %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf("SELECT %s FROM accounts %s ORDER BY name LIMIT $%d OFFSET $%d",
		accountColumns, whereClause, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		err := rows.Scan(
			&a.ID, &a.Name, &a.Location, &a.ContactName, &a.ContactPhone, &a.PaymentType,
			&a.CreditDays, &a.CreditLimit, &a.AISummary, &a.AISentiment, &a.IsActive,
			&a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

func (r *repository) Create(ctx context.Context, account Account) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO accounts (name, location, contact_name, contact_phone, payment_type,
			credit_days, credit_limit, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id`,
		account.Name, account.Location, account.ContactName, account.ContactPhone,
		account.PaymentType, account.CreditDays, account.CreditLimit, account.IsActive,
		account.CreatedBy,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrAlreadyExists
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	setClauses := make([]string, 0, len(updates)+1)
	args := make([]interface{}, 0, len(updates)+1)
	argPos := 1
	for column, value := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE accounts SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
