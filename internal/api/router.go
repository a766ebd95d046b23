package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/platform/metrics"
	"route-optimizer-service/internal/ports"
)

// Deps bundles everything the HTTP surface needs. Cache may be nil when no
// Redis is configured.
type Deps struct {
	Jobs      ports.JobRepository
	Vehicles  ports.VehicleRepository
	Results   ports.ResultRepository
	Optimizer ports.Optimizer
	Cache     ports.ResultCache
	Metrics   *metrics.Metrics
	Registry  *prometheus.Registry
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	jobHandler := &handlers.JobHandler{Repo: deps.Jobs}
	vehicleHandler := &handlers.VehicleHandler{Repo: deps.Vehicles}
	resultHandler := &handlers.ResultHandler{Repo: deps.Results}
	optimizeHandler := &handlers.OptimizeHandler{
		Optimizer: deps.Optimizer,
		Results:   deps.Results,
		Cache:     deps.Cache,
		Metrics:   deps.Metrics,
	}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("POST /api/jobs", jobHandler.Create)
	mux.HandleFunc("GET /api/jobs", jobHandler.List)
	mux.HandleFunc("DELETE /api/jobs/{id}", jobHandler.Delete)

	mux.HandleFunc("POST /api/vehicles", vehicleHandler.Create)
	mux.HandleFunc("GET /api/vehicles", vehicleHandler.List)
	mux.HandleFunc("DELETE /api/vehicles/{id}", vehicleHandler.Delete)

	mux.HandleFunc("GET /api/results", resultHandler.List)
	mux.HandleFunc("POST /api/optimize", optimizeHandler.Optimize)

	mux.Handle("GET /metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(deps.Metrics, corsMiddleware(mux))
}
