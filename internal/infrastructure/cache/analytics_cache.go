// Package cache decora los reportes de analítica con una caché Redis de vida corta.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/warehouse-api/internal/domain/ledger"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

const keyPrefix = "warehouse:analytics"

var _ repository.AnalyticsRepository = (*AnalyticsCache)(nil)

// LookupRecorder recibe el resultado de cada consulta (hit, miss, error).
type LookupRecorder interface {
	CacheLookup(result string)
}

// AnalyticsCache implementa AnalyticsRepository sobre otro repositorio. Los reportes se guardan
// como JSON con un TTL; cualquier fallo de Redis se registra y se responde desde el repositorio.
// Los reportes pueden estar desactualizados hasta ttl después de una escritura.
type AnalyticsCache struct {
	next    repository.AnalyticsRepository
	client  *redis.Client
	ttl     time.Duration
	log     *logger.Logger
	metrics LookupRecorder
}

// Option configura la caché.
type Option func(*AnalyticsCache)

// WithLogger asigna el logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *AnalyticsCache) { c.log = log.Named("analytics_cache") }
}

// WithRecorder asigna el receptor de métricas.
func WithRecorder(r LookupRecorder) Option {
	return func(c *AnalyticsCache) { c.metrics = r }
}

// NewAnalyticsCache decora next. El llamador conserva la propiedad del cliente.
func NewAnalyticsCache(next repository.AnalyticsRepository, client *redis.Client, ttl time.Duration, opts ...Option) *AnalyticsCache {
	c := &AnalyticsCache{next: next, client: client, ttl: ttl, log: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClient crea un cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: conectar a redis: %w", err)
	}
	return client, nil
}

func cacheKey(report, companyID string, limit int) string {
	if companyID == "" {
		companyID = "all"
	}
	return fmt.Sprintf("%s:%s:%s:%d", keyPrefix, report, companyID, limit)
}

func (c *AnalyticsCache) BestSellingProducts(ctx context.Context, companyID string, limit int) ([]ledger.BestSeller, error) {
	return cached(ctx, c, cacheKey("best_selling", companyID, limit), func() ([]ledger.BestSeller, error) {
		return c.next.BestSellingProducts(ctx, companyID, limit)
	})
}

func (c *AnalyticsCache) HighestStockProducts(ctx context.Context, companyID string, limit int) ([]ledger.StockRank, error) {
	return cached(ctx, c, cacheKey("highest_stock", companyID, limit), func() ([]ledger.StockRank, error) {
		return c.next.HighestStockProducts(ctx, companyID, limit)
	})
}

func (c *AnalyticsCache) TopCustomers(ctx context.Context, companyID string, limit int) ([]ledger.CustomerRank, error) {
	return cached(ctx, c, cacheKey("top_customers", companyID, limit), func() ([]ledger.CustomerRank, error) {
		return c.next.TopCustomers(ctx, companyID, limit)
	})
}

func cached[T any](ctx context.Context, c *AnalyticsCache, key string, load func() ([]T, error)) ([]T, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out []T
		if uErr := json.Unmarshal(data, &out); uErr == nil {
			c.record("hit")
			return out, nil
		}
		c.log.Warn().Str("key", key).Msg("entrada de caché ilegible, se recalcula")
	case errors.Is(err, redis.Nil):
		c.record("miss")
	default:
		c.record("error")
		c.log.Warn().Err(err).Str("key", key).Msg("redis no disponible, se consulta la base")
	}

	out, err := load()
	if err != nil {
		return nil, err
	}
	if payload, mErr := json.Marshal(out); mErr == nil {
		if sErr := c.client.Set(ctx, key, payload, c.ttl).Err(); sErr != nil {
			c.log.Debug().Err(sErr).Str("key", key).Msg("no se pudo guardar en caché")
		}
	}
	return out, nil
}

func (c *AnalyticsCache) record(result string) {
	if c.metrics != nil {
		c.metrics.CacheLookup(result)
	}
}
