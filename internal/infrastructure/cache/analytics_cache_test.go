package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/ledger"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/cache"
)

type stubRepo struct{ calls int }

func (s *stubRepo) BestSellingProducts(context.Context, string, int) ([]ledger.BestSeller, error) {
	s.calls++
	return []ledger.BestSeller{{
		ProductID: "p1", Name: "Aceite", Code: "A-1", Type: entity.ProductTypeLiquid,
		TotalQuantitySold: 7, TotalRevenue: decimal.RequireFromString("87.50"), OrderCount: 2,
	}}, nil
}

func (s *stubRepo) HighestStockProducts(context.Context, string, int) ([]ledger.StockRank, error) {
	s.calls++
	return []ledger.StockRank{{ProductID: "p1", CurrentStock: 3}}, nil
}

func (s *stubRepo) TopCustomers(context.Context, string, int) ([]ledger.CustomerRank, error) {
	s.calls++
	return []ledger.CustomerRank{{
		CustomerID: "c1", Name: "Tienda Norte", Type: entity.CustomerTypeCustomer,
		TotalOrders: 3, TotalOrderValue: decimal.RequireFromString("650.25"),
	}}, nil
}

type recorder map[string]int

func (r recorder) CacheLookup(result string) { r[result]++ }

func TestAnalyticsCache_FallsBackWhenRedisIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	repo := &stubRepo{}
	rec := recorder{}
	c := cache.NewAnalyticsCache(repo, client, time.Minute, cache.WithRecorder(rec))

	best, err := c.BestSellingProducts(context.Background(), "c1", 10)
	require.NoError(t, err)
	require.Len(t, best, 1)
	assert.Equal(t, int64(7), best[0].TotalQuantitySold)

	stock, err := c.HighestStockProducts(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stock[0].CurrentStock)

	assert.Equal(t, 2, repo.calls)
	assert.Equal(t, 2, rec["error"])
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestAnalyticsCache_MissThenHit(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniredis(t)
	repo := &stubRepo{}
	rec := recorder{}
	c := cache.NewAnalyticsCache(repo, client, time.Minute, cache.WithRecorder(rec))
	const key = "warehouse:analytics:best_selling:c1:10"

	// Caso 1: primera consulta va al repositorio y queda guardada con TTL
	first, err := c.BestSellingProducts(ctx, "c1", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, rec["miss"])
	require.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	// Caso 2: segunda consulta sale de Redis con decimales y tipo intactos
	second, err := c.BestSellingProducts(ctx, "c1", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, rec["hit"])
	require.Len(t, second, 1)
	assert.Equal(t, entity.ProductTypeLiquid, second[0].Type)
	assert.True(t, first[0].TotalRevenue.Equal(second[0].TotalRevenue), second[0].TotalRevenue.String())
	assert.Equal(t, "87.5", second[0].TotalRevenue.String())
	assert.Equal(t, int64(7), second[0].TotalQuantitySold)
	assert.Equal(t, int64(2), second[0].OrderCount)

	// Caso 3: otra empresa u otro límite son entradas distintas
	_, err = c.BestSellingProducts(ctx, "", 10)
	require.NoError(t, err)
	_, err = c.BestSellingProducts(ctx, "c1", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.calls)
	assert.True(t, mr.Exists("warehouse:analytics:best_selling:all:10"))
	assert.True(t, mr.Exists("warehouse:analytics:best_selling:c1:5"))

	// Caso 4: vencido el TTL se recalcula
	mr.FastForward(time.Minute + time.Second)
	_, err = c.BestSellingProducts(ctx, "c1", 10)
	require.NoError(t, err)
	assert.Equal(t, 4, repo.calls)
	assert.Equal(t, 4, rec["miss"])
}

func TestAnalyticsCache_TopCustomersRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, client := newMiniredis(t)
	repo := &stubRepo{}
	c := cache.NewAnalyticsCache(repo, client, time.Minute)

	_, err := c.TopCustomers(ctx, "c1", 10)
	require.NoError(t, err)
	got, err := c.TopCustomers(ctx, "c1", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	require.Len(t, got, 1)
	assert.Equal(t, entity.CustomerTypeCustomer, got[0].Type)
	assert.Equal(t, int64(3), got[0].TotalOrders)
	assert.True(t, decimal.RequireFromString("650.25").Equal(got[0].TotalOrderValue))
}

func TestAnalyticsCache_UnreadableEntryIsRecomputed(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniredis(t)
	repo := &stubRepo{}
	c := cache.NewAnalyticsCache(repo, client, time.Minute)
	const key = "warehouse:analytics:highest_stock:c1:10"
	require.NoError(t, mr.Set(key, "no-json"))

	stock, err := c.HighestStockProducts(ctx, "c1", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, int64(3), stock[0].CurrentStock)

	// la entrada ilegible se reemplaza
	raw, err := mr.Get(key)
	require.NoError(t, err)
	assert.Contains(t, raw, `"CurrentStock":3`)
}
