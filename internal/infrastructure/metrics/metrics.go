package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Email fan-out
	EmailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Emails accepted by the SMTP server",
		},
		[]string{"kind"},
	)
	EmailsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_failed_total",
			Help: "Emails that could not be delivered",
		},
		[]string{"kind"},
	)
	NotifyQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "notify_queue_depth",
			Help: "Messages waiting for a notification worker",
		},
	)

	// Workshop lifecycle
	WorkshopRegistrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workshop_registrations_total",
			Help: "Registration attempts by outcome",
		},
		[]string{"outcome"}, // registered|full|closed|duplicate
	)

	initOnce sync.Once
)

// Handler serves /metrics.
var Handler = promhttp.Handler

// Init registers the collectors once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(RequestLatency)
		prometheus.MustRegister(EmailsSent)
		prometheus.MustRegister(EmailsFailed)
		prometheus.MustRegister(NotifyQueueDepth)
		prometheus.MustRegister(WorkshopRegistrations)
	})
}
