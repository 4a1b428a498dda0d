package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keepsake_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "keepsake_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	cardsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keepsake_cards_created_total",
		Help: "Cards persisted through the API.",
	})

	viewsCounted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keepsake_views_counted_total",
		Help: "View increments accepted.",
	})
)
