package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	registerer prometheus.Registerer

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	CheckoutDecisions   *prometheus.CounterVec
	PricingEvaluations  *prometheus.CounterVec
}

// New регистрирует метрики в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в переданном registry (удобно для тестов)
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		registerer: reg,
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CheckoutDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "checkout_admission_decisions_total",
			Help:        "Admission decisions made for checkout requests",
			ConstLabels: constLabels,
		}, []string{"decision"}),
		PricingEvaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "pricing_rule_evaluations_total",
			Help:        "Price rule evaluations by selected branch and outcome",
			ConstLabels: constLabels,
		}, []string{"branch", "outcome"}),
	}
}

// RecordCheckoutDecision увеличивает счетчик решений по допуску бронирования
func (m *Metrics) RecordCheckoutDecision(decision string) {
	m.CheckoutDecisions.WithLabelValues(decision).Inc()
}

// RecordPricingEvaluation учитывает результат вычисления цены
// priced=false означает, что цена не была получена (null price)
func (m *Metrics) RecordPricingEvaluation(branch string, priced bool) {
	outcome := "priced"
	if !priced {
		outcome = "unpriced"
	}
	m.PricingEvaluations.WithLabelValues(branch, outcome).Inc()
}

// RegisterDBStats регистрирует коллектор статистики пула соединений
func (m *Metrics) RegisterDBStats(db *sql.DB, dbName string) error {
	return m.registerer.Register(collectors.NewDBStatsCollector(db, dbName))
}
