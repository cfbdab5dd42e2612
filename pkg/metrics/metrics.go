// Package metrics содержит prometheus-коллекторы сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор коллекторов для HTTP и бизнес-событий бронирования
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ReservationsTotal *prometheus.CounterVec
	ConflictsTotal    prometheus.Counter
	HoldsExpiredTotal prometheus.Counter
	RefundAmount      prometheus.Histogram
}

// New регистрирует коллекторы в default registry
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Количество HTTP запросов",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Длительность обработки HTTP запросов",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		ReservationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservations_total",
			Help:        "Количество созданных резервов по режиму (hold/confirm)",
			ConstLabels: labels,
		}, []string{"mode"}),

		ConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reservation_conflicts_total",
			Help:        "Количество отклоненных по конфликту запросов на резерв",
			ConstLabels: labels,
		}),

		HoldsExpiredTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "holds_expired_total",
			Help:        "Количество временных холдов, вычищенных по TTL",
			ConstLabels: labels,
		}),

		RefundAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:        "refund_amount_minor_units",
			Help:        "Суммы рассчитанных возвратов в минорных единицах",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(100, 4, 8),
		}),
	}
}
