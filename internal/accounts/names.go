package accounts

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NameLookup resolves account ids to display names for reporting surfaces.
type NameLookup struct {
	pool *pgxpool.Pool
}

func NewNameLookup(pool *pgxpool.Pool) *NameLookup {
	return &NameLookup{pool: pool}
}

func (n *NameLookup) AccountNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := n.pool.Query(ctx, `SELECT id, name FROM accounts WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("account names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan account name: %w", err)
		}
		out[id] = name
	}
	return out, rows.Err()
}
