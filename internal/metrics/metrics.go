// Package metrics - счетчики Prometheus для диспетчеризации и рассылки уведомлений.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dispatch"

// Metrics хранит собственный реестр, чтобы тесты не конфликтовали с глобальным
type Metrics struct {
	registry *prometheus.Registry

	DispatchOutcomes     *prometheus.CounterVec
	Reassignments        *prometheus.CounterVec
	Deliveries           *prometheus.CounterVec
	PendingConfirmations prometheus.Gauge
	HTTPRequests         *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		DispatchOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_outcomes_total",
			Help:      "Resource matching outcomes by resource kind and fallback tier",
		}, []string{"resource", "tier"}),
		Reassignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reassignments_total",
			Help:      "Hospital reassignments by reason and result",
		}, []string{"reason", "result"}),
		Deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_deliveries_total",
			Help:      "Room notification deliveries by sink, event and outcome",
		}, []string{"sink", "event", "outcome"}),
		PendingConfirmations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_confirmations",
			Help:      "Dispatched incidents awaiting hospital confirmation",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
	}

	registry.MustRegister(
		m.DispatchOutcomes,
		m.Reassignments,
		m.Deliveries,
		m.PendingConfirmations,
		m.HTTPRequests,
	)
	return m
}

// ObserveMatch учитывает результат подбора ресурса
func (m *Metrics) ObserveMatch(resource, tier string) {
	m.DispatchOutcomes.WithLabelValues(resource, tier).Inc()
}

// ObserveReassignment учитывает переназначение больницы
func (m *Metrics) ObserveReassignment(reason string, reassigned bool) {
	result := "reassigned"
	if !reassigned {
		result = "unassigned"
	}
	m.Reassignments.WithLabelValues(reason, result).Inc()
}

// ObserveDelivery реализует notifier.DeliveryObserver
func (m *Metrics) ObserveDelivery(sink, event string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Deliveries.WithLabelValues(sink, event, outcome).Inc()
}

// SetPending выставляет размер реестра ожидающих подтверждения
func (m *Metrics) SetPending(n int) {
	m.PendingConfirmations.Set(float64(n))
}

// ObserveHTTP учитывает обработанный HTTP-запрос
func (m *Metrics) ObserveHTTP(route, method, status string) {
	m.HTTPRequests.WithLabelValues(route, method, status).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
