package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("opportunity not found")

type Repository interface {
	Get(ctx context.Context, id int64) (*Opportunity, error)
	List(ctx context.Context, req ListOpportunitiesRequest) ([]Opportunity, error)
	Create(ctx context.Context, opp Opportunity) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db dbtx
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const opportunityColumns = `id, prospect_name, account_id, product_interest, stage,
	expected_monthly_qty, notes, owner_id, closed_at, created_at, updated_at`

func scanOpportunity(row pgx.Row) (*Opportunity, error) {
	var o Opportunity
	err := row.Scan(
		&o.ID, &o.ProspectName, &o.AccountID, &o.ProductInterest, &o.Stage,
		&o.ExpectedMonthlyQty, &o.Notes, &o.OwnerID, &o.ClosedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Opportunity, error) {
	query := fmt.Sprintf(`SELECT %s FROM opportunities WHERE id = $1`, opportunityColumns)
	o, err := scanOpportunity(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get opportunity: %w", err)
	}
	return o, nil
}

func (r *repository) List(ctx context.Context, req ListOpportunitiesRequest) ([]Opportunity, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if req.Stage != nil {
		conditions = append(conditions, fmt.Sprintf("stage = $%d", argPos))
		args = append(args, *req.Stage)
		argPos++
	}
	if req.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argPos))
		args = append(args, *req.OwnerID)
		argPos++
	}
	if req.Open != nil {
		if *req.Open {
			conditions = append(conditions, "closed_at IS NULL")
		} else {
			conditions = append(conditions, "closed_at IS NOT NULL")
		}
	}

	query := fmt.Sprintf(
		`SELECT %s FROM opportunities WHERE %s ORDER BY updated_at DESC`,
		opportunityColumns, strings.Join(conditions, " AND "),
	)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	defer rows.Close()

	var out []Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan opportunity: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, opp Opportunity) (int64, error) {
	query := `
		INSERT INTO opportunities (
			prospect_name, account_id, product_interest, stage,
			expected_monthly_qty, notes, owner_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		opp.ProspectName, opp.AccountID, opp.ProductInterest, opp.Stage,
		opp.ExpectedMonthlyQty, opp.Notes, opp.OwnerID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert opportunity: %w", err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	setClauses := []string{}
	args := []interface{}{}
	argPos := 1
	for column, value := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE opportunities SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argPos)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM opportunities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
