//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/warehouse-api/internal/application/analytics"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/orders"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse-api/pkg/config"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

type ledgerEnv struct {
	ctx       context.Context
	guard     *inventory.OrderItemGuard
	stock     *inventory.StockUseCase
	orders    *orders.OrderUseCase
	reports   *analytics.AnalyticsUseCase
	company   string
	customer  string
	warehouse string
	product   string
}

func newLedgerEnv(t *testing.T) *ledgerEnv {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("warehouse_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	log := logger.Nop()
	require.NoError(t, postgres.Migrate(dsn, log))
	// Una segunda ejecución no tiene cambios pendientes.
	require.NoError(t, postgres.Migrate(dsn, log))

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	tx := postgres.NewTxRunner(pool)
	repos := postgres.NewRepos(pool)
	env := &ledgerEnv{
		ctx:     ctx,
		guard:   inventory.NewOrderItemGuard(tx, repos, log),
		stock:   inventory.NewStockUseCase(repos),
		orders:  orders.NewOrderUseCase(tx, repos, log, orders.DefaultNumberingRetries),
		reports: analytics.NewAnalyticsUseCase(postgres.NewAnalyticsRepository(pool)),
	}

	company, err := usecase.NewCompanyUseCase(repos.Companies).Create(ctx, dto.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)
	env.company = company.ID
	customer, err := usecase.NewCustomerUseCase(repos).Create(ctx, env.company, dto.CreateCustomerRequest{Type: "customer", Name: "Tienda Norte"})
	require.NoError(t, err)
	env.customer = customer.ID
	solid := "solid"
	warehouse, err := usecase.NewWarehouseUseCase(tx, repos).Create(ctx, env.company, dto.CreateWarehouseRequest{Name: "Central", Type: &solid})
	require.NoError(t, err)
	env.warehouse = warehouse.ID
	price := decimal.NewFromInt(10)
	product, err := usecase.NewProductUseCase(tx, repos).Create(ctx, env.company, dto.CreateProductRequest{Name: "Tornillo", Code: "T-1", Price: &price, Type: "solid"})
	require.NoError(t, err)
	env.product = product.ID
	return env
}

func (e *ledgerEnv) order(t *testing.T, typ string) string {
	t.Helper()
	out, err := e.orders.Create(e.ctx, e.company, dto.CreateOrderRequest{Type: typ, CustomerID: e.customer, WarehouseID: e.warehouse})
	require.NoError(t, err)
	return out.Order.ID
}

func (e *ledgerEnv) addItem(orderID string, qty int64) (*dto.OrderItemResponse, error) {
	price := decimal.RequireFromString("2.50")
	return e.guard.Create(e.ctx, e.company, dto.CreateOrderItemRequest{OrderID: orderID, ProductID: e.product, Quantity: qty, Price: &price})
}

func TestLedger_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("requiere Docker")
	}
	env := newLedgerEnv(t)

	t.Run("stock derivado y rechazo por saldo", func(t *testing.T) {
		_, err := env.addItem(env.order(t, "purchase"), 100)
		require.NoError(t, err)
		sale := env.order(t, "sales")
		_, err = env.addItem(sale, 30)
		require.NoError(t, err)

		current, err := env.stock.CurrentStock(env.ctx, env.product)
		require.NoError(t, err)
		assert.EqualValues(t, 70, current)

		_, err = env.addItem(sale, 1000)
		var insufficient *domain.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.EqualValues(t, 70, insufficient.Current)
		assert.EqualValues(t, 1000, insufficient.Requested)
	})

	t.Run("débitos concurrentes no dejan saldo negativo", func(t *testing.T) {
		// Saldo inicial: 70. Dos ventas de 70 compiten.
		first, second := env.order(t, "sales"), env.order(t, "sales")
		var ok, rejected atomic.Int32
		var g errgroup.Group
		for _, id := range []string{first, second} {
			g.Go(func() error {
				_, err := env.addItem(id, 70)
				var insufficient *domain.InsufficientStockError
				switch {
				case err == nil:
					ok.Add(1)
				case errors.As(err, &insufficient):
					rejected.Add(1)
				default:
					return err
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())
		assert.EqualValues(t, 1, ok.Load())
		assert.EqualValues(t, 1, rejected.Load())

		current, err := env.stock.CurrentStock(env.ctx, env.product)
		require.NoError(t, err)
		assert.EqualValues(t, 0, current)
	})

	t.Run("numeración secuencial por empresa", func(t *testing.T) {
		out, err := env.orders.Create(env.ctx, env.company, dto.CreateOrderRequest{Type: "sales", CustomerID: env.customer, WarehouseID: env.warehouse})
		require.NoError(t, err)
		assert.Regexp(t, `^ORD-\d{2}-000005$`, out.Order.Number)
		require.NotNil(t, out.Invoice)
		assert.Regexp(t, `^INV-\d{2}-000004$`, out.Invoice.Number)
	})

	t.Run("reportes sobre el libro", func(t *testing.T) {
		summary, err := env.reports.Summary(env.ctx, env.company, 5)
		require.NoError(t, err)
		require.Len(t, summary.BestSelling, 1)
		assert.EqualValues(t, 100, summary.BestSelling[0].TotalQuantitySold)
		require.Len(t, summary.HighestStock, 1)
		assert.EqualValues(t, 0, summary.HighestStock[0].CurrentStock)
		require.Len(t, summary.TopCustomers, 1)
		assert.EqualValues(t, 5, summary.TopCustomers[0].TotalOrders)
	})

	t.Run("movimientos eliminados salen de los reportes", func(t *testing.T) {
		// Saldo inicial: 0. Compra de 40 y venta de 40.
		purchase := env.order(t, "purchase")
		_, err := env.addItem(purchase, 40)
		require.NoError(t, err)
		sale := env.order(t, "sales")
		item, err := env.addItem(sale, 40)
		require.NoError(t, err)

		summary, err := env.reports.Summary(env.ctx, env.company, 5)
		require.NoError(t, err)
		require.Len(t, summary.BestSelling, 1)
		assert.EqualValues(t, 140, summary.BestSelling[0].TotalQuantitySold)
		assert.EqualValues(t, 7, summary.TopCustomers[0].TotalOrders)
		assert.True(t, decimal.NewFromInt(700).Equal(summary.TopCustomers[0].TotalOrderValue), summary.TopCustomers[0].TotalOrderValue.String())

		// Caso 1: el ítem de venta eliminado deja de contar como venta y devuelve el saldo
		deleted, err := env.guard.Delete(env.ctx, env.company, item.ID)
		require.NoError(t, err)
		require.True(t, deleted)
		summary, err = env.reports.Summary(env.ctx, env.company, 5)
		require.NoError(t, err)
		require.Len(t, summary.BestSelling, 1)
		assert.EqualValues(t, 100, summary.BestSelling[0].TotalQuantitySold)
		assert.EqualValues(t, 40, summary.HighestStock[0].CurrentStock)
		assert.True(t, decimal.NewFromInt(600).Equal(summary.TopCustomers[0].TotalOrderValue), summary.TopCustomers[0].TotalOrderValue.String())

		// Caso 2: la orden de compra eliminada sale del saldo y del conteo de órdenes
		require.NoError(t, env.orders.Delete(env.ctx, env.company, purchase))
		summary, err = env.reports.Summary(env.ctx, env.company, 5)
		require.NoError(t, err)
		assert.EqualValues(t, 0, summary.HighestStock[0].CurrentStock)
		assert.EqualValues(t, 6, summary.TopCustomers[0].TotalOrders)
		assert.True(t, decimal.NewFromInt(500).Equal(summary.TopCustomers[0].TotalOrderValue), summary.TopCustomers[0].TotalOrderValue.String())
	})
}
