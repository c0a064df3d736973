package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "encuestas"

// Metrics reúne os coletores da API
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ReportsTotal        *prometheus.CounterVec
	ReportDuration      *prometheus.HistogramVec
	ImportBatchesTotal  *prometheus.CounterVec
	ImportRowsTotal     *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registra os coletores em reg; nil usa um registry próprio
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requisições HTTP por rota e status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duração das requisições HTTP",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ReportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "generated_total",
			Help:      "Relatórios gerados por formato e granularidade",
		}, []string{"format", "granularity"}),
		ReportDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "duration_seconds",
			Help:      "Duração do pipeline de relatório",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"format"}),
		ImportBatchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "batches_total",
			Help:      "Cargas de nómina por status",
		}, []string{"status"}),
		ImportRowsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Linhas de nómina importadas ou ignoradas",
		}, []string{"outcome"}),
		gatherer: reg,
	}
}

// ObserveRequest registra uma requisição HTTP concluída
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveReport registra um relatório gerado
func (m *Metrics) ObserveReport(format, granularity string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ReportsTotal.WithLabelValues(format, granularity).Inc()
	m.ReportDuration.WithLabelValues(format).Observe(elapsed.Seconds())
}

// ObserveImport registra o resultado de uma carga
func (m *Metrics) ObserveImport(status string, imported, skipped int) {
	if m == nil {
		return
	}
	m.ImportBatchesTotal.WithLabelValues(status).Inc()
	m.ImportRowsTotal.WithLabelValues("imported").Add(float64(imported))
	m.ImportRowsTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// Handler expõe os coletores no formato de texto do Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
