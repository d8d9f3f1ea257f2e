package activities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("activity not found")

type Repository interface {
	Get(ctx context.Context, id int64) (*Activity, error)
	List(ctx context.Context, req ListActivitiesRequest) ([]Activity, int, error)
	Create(ctx context.Context, activity Activity) (int64, error)
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

const activityColumns = `id, account_id, opportunity_id, kind, summary, details,
	due_at, completed_at, created_by, created_at, updated_at`

func scanActivity(row pgx.Row) (*Activity, error) {
	var a Activity
	err := row.Scan(
		&a.ID, &a.AccountID, &a.OpportunityID, &a.Kind, &a.Summary, &a.Details,
		&a.DueAt, &a.CompletedAt, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Activity, error) {
	query := fmt.Sprintf(`SELECT %s FROM activities WHERE id = $1`, activityColumns)
	a, err := scanActivity(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return a, nil
}

func (r *repository) List(ctx context.Context, req ListActivitiesRequest) ([]Activity, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if req.AccountID != nil {
		conditions = append(conditions, fmt.Sprintf("account_id = $%d", argPos))
		args = append(args, *req.AccountID)
		argPos++
	}
	if req.OpportunityID != nil {
		conditions = append(conditions, fmt.Sprintf("opportunity_id = $%d", argPos))
		args = append(args, *req.OpportunityID)
		argPos++
	}
	if req.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argPos))
		args = append(args, *req.Kind)
		argPos++
	}
	if req.DueBefore != nil {
		conditions = append(conditions, fmt.Sprintf("due_at IS NOT NULL AND due_at <= $%d", argPos))
		args = append(args, *req.DueBefore)
		argPos++
	}
	if req.PendingOnly {
		conditions = append(conditions, "completed_at IS NULL")
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM activities WHERE %s`, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(
		`SELECT %s FROM activities WHERE %s
		 ORDER BY due_at NULLS LAST, created_at DESC LIMIT $%d OFFSET $%d`,
		activityColumns, where, argPos, argPos+1,
	)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, *a)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, activity Activity) (int64, error) {
	query := `
		INSERT INTO activities (account_id, opportunity_id, kind, summary, details, due_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		activity.AccountID, activity.OpportunityID, activity.Kind,
		activity.Summary, activity.Details, activity.DueAt, activity.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert activity: %w", err)
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

	query := fmt.Sprintf(`UPDATE activities SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argPos)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
