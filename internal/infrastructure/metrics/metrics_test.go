package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("GET", "/reports", 200, 20*time.Millisecond)
	m.ObserveRequest("GET", "/reports", 200, 30*time.Millisecond)
	m.ObserveRequest("GET", "/reports", 400, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/reports", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/reports", "400")))
}

func TestObserveImport(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveImport("committed", 120, 3)
	m.ObserveImport("failed", 0, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ImportBatchesTotal.WithLabelValues("committed")))
	assert.Equal(t, 120.0, testutil.ToFloat64(m.ImportRowsTotal.WithLabelValues("imported")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ImportRowsTotal.WithLabelValues("skipped")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/", 200, time.Second)
		m.ObserveReport("csv", "survey", time.Second)
		m.ObserveImport("committed", 1, 0)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New(nil)
	m.ObserveReport("csv", "region", 100*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `encuestas_reports_generated_total{format="csv",granularity="region"} 1`)
}
