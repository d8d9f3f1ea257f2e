package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates resource not found.
var ErrNotFound = errors.New("ledger: not found")

// Repository provides PostgreSQL backed reads over the sales and payments
// ledgers. It reads the tables written by the orders and payments modules.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListSales returns the account's sales ascending by date then id, so the
// FIFO walk sees a deterministic order for same-day sales.
func (r *Repository) ListSales(ctx context.Context, accountID int64) ([]SaleRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, transaction_date, quantity, unit_price, unit_cost, net_amount, gross_amount
		FROM orders
		WHERE account_id = $1
		ORDER BY transaction_date, id`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []SaleRecord
	for rows.Next() {
		var s SaleRecord
		if err := rows.Scan(&s.ID, &s.AccountID, &s.TransactionDate, &s.Quantity, &s.UnitPrice, &s.UnitCost, &s.NetAmount, &s.GrossAmount); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}

// ListPayments returns the account's payments in any order; totals are
// order independent.
func (r *Repository) ListPayments(ctx context.Context, accountID int64) ([]PaymentRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, payment_date, amount, COALESCE(notes, '')
		FROM payments
		WHERE account_id = $1
		ORDER BY payment_date DESC, id DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []PaymentRecord
	for rows.Next() {
		var p PaymentRecord
		if err := rows.Scan(&p.ID, &p.AccountID, &p.PaymentDate, &p.Amount, &p.Notes); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// GetPolicy loads the account's credit terms.
func (r *Repository) GetPolicy(ctx context.Context, accountID int64) (AccountPolicy, error) {
	var policy AccountPolicy
	err := r.pool.QueryRow(ctx, `
		SELECT id, credit_days, credit_limit
		FROM accounts
		WHERE id = $1`, accountID).Scan(&policy.AccountID, &policy.CreditDaysLimit, &policy.CreditLimit)
	if errors.Is(err, pgx.ErrNoRows) {
		return AccountPolicy{}, ErrNotFound
	}
	if err != nil {
		return AccountPolicy{}, err
	}
	return policy, nil
}

// ListAccountIDs returns the ids of all active accounts.
func (r *Repository) ListAccountIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM accounts WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
