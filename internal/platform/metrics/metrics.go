package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "car_rental",
		Name:      "bookings_created_total",
		Help:      "Bookings created, by payment method.",
	}, []string{"payment_method"})

	PaymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "car_rental",
		Name:      "payments_recorded_total",
		Help:      "Ledger entries appended, by channel.",
	}, []string{"channel"})

	PaymentRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "car_rental",
		Name:      "payment_rejections_total",
		Help:      "Payment completions refused, by reason.",
	}, []string{"reason"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "car_rental",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
