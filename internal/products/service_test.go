package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryProductRepo struct {
	products map[int64]*Product
	prices   map[[2]int64]*ClientPrice
	nextID   int64
}

func newMemoryProductRepo() *memoryProductRepo {
	return &memoryProductRepo{
		products: make(map[int64]*Product),
		prices:   make(map[[2]int64]*ClientPrice),
	}
}

func (r *memoryProductRepo) Get(ctx context.Context, id int64) (*Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memoryProductRepo) List(ctx context.Context, activeOnly bool) ([]Product, error) {
	var out []Product
	for _, p := range r.products {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *memoryProductRepo) Create(ctx context.Context, product Product) (int64, error) {
	r.nextID++
	product.ID = r.nextID
	product.IsActive = true
	r.products[product.ID] = &product
	return product.ID, nil
}

func (r *memoryProductRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	p, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	for column, value := range updates {
		switch column {
		case "name":
			p.Name = value.(string)
		case "default_price":
			p.DefaultPrice = value.(float64)
		case "is_active":
			p.IsActive = value.(bool)
		}
	}
	return nil
}

func (r *memoryProductRepo) GetClientPrice(ctx context.Context, accountID, productID int64) (*ClientPrice, error) {
	cp, ok := r.prices[[2]int64{accountID, productID}]
	if !ok {
		return nil, ErrNotFound
	}
	return cp, nil
}

func (r *memoryProductRepo) ListClientPrices(ctx context.Context, accountID int64) ([]ClientPrice, error) {
	var out []ClientPrice
	for key, cp := range r.prices {
		if key[0] == accountID {
			out = append(out, *cp)
		}
	}
	return out, nil
}

func (r *memoryProductRepo) UpsertClientPrice(ctx context.Context, price ClientPrice) error {
	r.prices[[2]int64{price.AccountID, price.ProductID}] = &price
	return nil
}

func (r *memoryProductRepo) DeleteClientPrice(ctx context.Context, accountID, productID int64) error {
	key := [2]int64{accountID, productID}
	if _, ok := r.prices[key]; !ok {
		return ErrNotFound
	}
	delete(r.prices, key)
	return nil
}

func TestResolvePricePrefersClientPrice(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryProductRepo())

	product, err := svc.Create(ctx, CreateProductRequest{Name: "Plastomix 100", UOM: "L", DefaultPrice: 20})
	require.NoError(t, err)

	require.NoError(t, svc.SetClientPrice(ctx, SetClientPriceRequest{
		AccountID: 1, ProductID: product.ID, UnitPrice: 17.5,
	}))

	price, ok, err := svc.ResolvePrice(ctx, 1, product.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 17.5, price, 1e-9)
}

func TestResolvePriceFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryProductRepo())

	product, err := svc.Create(ctx, CreateProductRequest{Name: "Plastomix 100", UOM: "L", DefaultPrice: 20})
	require.NoError(t, err)

	price, ok, err := svc.ResolvePrice(ctx, 1, product.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 20.0, price, 1e-9)
}

func TestResolvePriceNoPriceAnywhere(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryProductRepo())

	product, err := svc.Create(ctx, CreateProductRequest{Name: "Sample", UOM: "L"})
	require.NoError(t, err)

	_, ok, err := svc.ResolvePrice(ctx, 1, product.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResolvePriceUnknownProduct(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryProductRepo())

	_, ok, err := svc.ResolvePrice(ctx, 1, 99)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSetClientPriceUnknownProduct(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryProductRepo())

	err := svc.SetClientPrice(ctx, SetClientPriceRequest{AccountID: 1, ProductID: 99, UnitPrice: 10})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProductName(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryProductRepo())

	product, err := svc.Create(ctx, CreateProductRequest{Name: "Plastomix 200", UOM: "L"})
	require.NoError(t, err)

	name, err := svc.ProductName(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, "Plastomix 200", name)

	_, err = svc.ProductName(ctx, 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProductDeactivate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryProductRepo())

	product, err := svc.Create(ctx, CreateProductRequest{Name: "Old line", UOM: "L", DefaultPrice: 5})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.Update(ctx, product.ID, UpdateProductRequest{IsActive: &inactive})
	require.NoError(t, err)
	require.False(t, updated.IsActive)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Empty(t, active)
}
