package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	OptimizeRequests     *prometheus.CounterVec
	EngineRequestSeconds *prometheus.HistogramVec
	EnginePollAttempts   prometheus.Histogram
	HTTPRequests         *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		OptimizeRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "optimize_requests_total",
			Help: "Total number of optimize calls by terminal outcome.",
		}, []string{"outcome"}),
		EngineRequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "engine_request_duration_seconds",
			Help:    "Duration of requests to the external optimization engine.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		EnginePollAttempts: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "engine_poll_attempts",
			Help:    "Number of result-fetch attempts per optimization submission.",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		}),
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of handled HTTP requests.",
		}, []string{"method", "path", "status"}),
	}
}
