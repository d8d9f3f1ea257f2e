package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrAlreadyExists = errors.New("product already exists")
)

type Repository interface {
	Get(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, activeOnly bool) ([]Product, error)
	Create(ctx context.Context, product Product) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	GetClientPrice(ctx context.Context, accountID, productID int64) (*ClientPrice, error)
	ListClientPrices(ctx context.Context, accountID int64) ([]ClientPrice, error)
	UpsertClientPrice(ctx context.Context, price ClientPrice) error
	DeleteClientPrice(ctx context.Context, accountID, productID int64) error
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

const productColumns = `id, name, category, uom, default_price, default_cost, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.UOM, &p.DefaultPrice, &p.DefaultCost,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)
	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products`, productColumns)
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, product Product) (int64, error) {
	query := `
		INSERT INTO products (name, category, uom, default_price, default_cost, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		product.Name, product.Category, product.UOM, product.DefaultPrice, product.DefaultCost,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrAlreadyExists
		}
		return 0, fmt.Errorf("insert product: %w", err)
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

	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argPos)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const clientPriceColumns = `id, account_id, product_id, unit_price, created_at, updated_at`

func scanClientPrice(row pgx.Row) (*ClientPrice, error) {
	var cp ClientPrice
	err := row.Scan(&cp.ID, &cp.AccountID, &cp.ProductID, &cp.UnitPrice, &cp.CreatedAt, &cp.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *repository) GetClientPrice(ctx context.Context, accountID, productID int64) (*ClientPrice, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM client_pricing WHERE account_id = $1 AND product_id = $2`,
		clientPriceColumns,
	)
	cp, err := scanClientPrice(r.db.QueryRow(ctx, query, accountID, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get client price: %w", err)
	}
	return cp, nil
}

func (r *repository) ListClientPrices(ctx context.Context, accountID int64) ([]ClientPrice, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM client_pricing WHERE account_id = $1 ORDER BY product_id`,
		clientPriceColumns,
	)
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list client prices: %w", err)
	}
	defer rows.Close()

	var out []ClientPrice
	for rows.Next() {
		cp, err := scanClientPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client price: %w", err)
		}
		out = append(out, *cp)
	}
	return out, rows.Err()
}

func (r *repository) UpsertClientPrice(ctx context.Context, price ClientPrice) error {
	query := `
		INSERT INTO client_pricing (account_id, product_id, unit_price)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, product_id)
		DO UPDATE SET unit_price = EXCLUDED.unit_price, updated_at = NOW()`

	_, err := r.db.Exec(ctx, query, price.AccountID, price.ProductID, price.UnitPrice)
	if err != nil {
		return fmt.Errorf("upsert client price: %w", err)
	}
	return nil
}

func (r *repository) DeleteClientPrice(ctx context.Context, accountID, productID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM client_pricing WHERE account_id = $1 AND product_id = $2`,
		accountID, productID,
	)
	if err != nil {
		return fmt.Errorf("delete client price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
