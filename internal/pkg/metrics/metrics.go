package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "smart_parking",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method, route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smart_parking",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	PriceQuotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smart_parking",
		Name:      "price_quotes_total",
		Help:      "Price calculations by outcome.",
	}, []string{"outcome"})

	PriceQuoteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "smart_parking",
		Name:      "price_quote_duration_seconds",
		Help:      "Time spent computing one price quote.",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	})

	ReservationsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "smart_parking",
		Name:      "reservations_created_total",
		Help:      "Successfully created reservations.",
	})
)

func ObserveQuote(start time.Time, outcome string) {
	PriceQuoteDuration.Observe(time.Since(start).Seconds())
	PriceQuotesTotal.WithLabelValues(outcome).Inc()
}
