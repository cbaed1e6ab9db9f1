package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "reservation"

// Metrics набор prometheus-метрик сервиса
// Все методы безопасны для nil-получателя, чтобы метрики можно было отключить в конфиге
type Metrics struct {
	service string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	slotEvaluations *prometheus.CounterVec
	bookingAttempts *prometheus.CounterVec

	upstreamRequestsTotal   *prometheus.CounterVec
	upstreamRequestDuration *prometheus.HistogramVec

	snapshotCache *prometheus.CounterVec

	dbConnections *prometheus.GaugeVec
	dbWaitCount   *prometheus.GaugeVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		service: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route and status",
		}, []string{"service", "method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
		slotEvaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "availability",
			Name:      "evaluations_total",
			Help:      "Slot evaluations by evaluation point and resulting reason",
		}, []string{"service", "path", "reason"}),
		bookingAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "attempts_total",
			Help:      "Booking attempts by outcome and error kind",
		}, []string{"service", "outcome", "kind"}),
		upstreamRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Requests to the upstream reservation platform",
		}, []string{"service", "method", "endpoint", "status"}),
		upstreamRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Latency of upstream reservation platform requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "method", "endpoint"}),
		snapshotCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "cache_total",
			Help:      "Snapshot cache lookups by result (hit, miss, error, invalidate)",
		}, []string{"service", "result"}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "connections",
			Help:      "Database connection pool state",
		}, []string{"service", "state"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "wait_count",
			Help:      "Total number of connections waited for",
		}, []string{"service"}),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.slotEvaluations,
		m.bookingAttempts,
		m.upstreamRequestsTotal,
		m.upstreamRequestDuration,
		m.snapshotCache,
		m.dbConnections,
		m.dbWaitCount,
	)
	return m
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.service, method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.service, method, route).Observe(elapsed.Seconds())
}

// ObserveSlotEvaluation фиксирует результат оценки слота (path: preview или booking)
func (m *Metrics) ObserveSlotEvaluation(path, reason string) {
	if m == nil {
		return
	}
	m.slotEvaluations.WithLabelValues(m.service, path, reason).Inc()
}

// ObserveBookingAttempt фиксирует исход попытки бронирования
func (m *Metrics) ObserveBookingAttempt(outcome, kind string) {
	if m == nil {
		return
	}
	m.bookingAttempts.WithLabelValues(m.service, outcome, kind).Inc()
}

// ObserveUpstreamRequest фиксирует запрос к внешней платформе
func (m *Metrics) ObserveUpstreamRequest(method, endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequestsTotal.WithLabelValues(m.service, method, endpoint, strconv.Itoa(status)).Inc()
	m.upstreamRequestDuration.WithLabelValues(m.service, method, endpoint).Observe(elapsed.Seconds())
}

// ObserveSnapshotCache фиксирует обращение к кешу снапшотов
func (m *Metrics) ObserveSnapshotCache(result string) {
	if m == nil {
		return
	}
	m.snapshotCache.WithLabelValues(m.service, result).Inc()
}

// SetDBPoolStats обновляет показатели пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues(m.service, "open").Set(float64(open))
	m.dbConnections.WithLabelValues(m.service, "in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues(m.service, "idle").Set(float64(idle))
	m.dbWaitCount.WithLabelValues(m.service).Set(float64(waitCount))
}
