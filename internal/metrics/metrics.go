package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RequestsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pickup_requests_created_total",
			Help: "Total pickup requests created",
		},
	)

	ReportsRendered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "monthly_reports_rendered_total",
			Help: "Total monthly PDF reports rendered",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(HTTPLatency)
	prometheus.MustRegister(RequestsCreated)
	prometheus.MustRegister(ReportsRendered)
}
