package metrics_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/infrastructure/metrics"
)

func TestMetrics_CountersAreExposed(t *testing.T) {
	m := metrics.New("warehouse_api")
	m.ObserveRequest("POST", "/api/order-items", 409, 15*time.Millisecond)
	m.Rejected("INSUFFICIENT_STOCK")
	m.Rejected("INSUFFICIENT_STOCK")
	m.CacheLookup("miss")

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				values[f.GetName()] += c.GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, values["warehouse_api_rejections_total"])
	assert.Equal(t, 1.0, values["warehouse_api_http_requests_total"])
	assert.Equal(t, 1.0, values["warehouse_api_analytics_cache_lookups_total"])

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `warehouse_api_rejections_total{code="INSUFFICIENT_STOCK"} 2`))
}
