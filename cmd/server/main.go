package main

import (
	"context"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/engine"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/platform/metrics"
	"route-optimizer-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, the optimization engine, optional
// Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	databaseURL := config.MustGet("DATABASE_URL")
	engineBaseURL := config.Get("ENGINE_BASE_URL", "https://api.nextbillion.io")
	engineAPIKey := config.MustGet("ENGINE_API_KEY")

	dtb, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer dtb.Close()

	// Initialize the schema on startup for local runs; statements are idempotent.
	if err := repositories.InitSchema(dtb); err != nil {
		log.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	optimizer, err := engine.NewClient(engineBaseURL, engineAPIKey, appMetrics)
	if err != nil {
		log.Fatal(err)
	}

	// The Redis result cache is optional: without REDIS_URL every optimize
	// call goes straight to the engine.
	var resultCache ports.ResultCache
	if redisURL := config.Get("REDIS_URL", ""); redisURL != "" {
		ttl := config.GetDuration("RESULT_CACHE_TTL", 10*time.Minute)
		rc, err := cache.NewRedisResultCache(redisURL, ttl)
		if err != nil {
			log.Fatal(err)
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			cancel()
			log.Fatal(err)
		}
		cancel()
		resultCache = rc
		log.Printf("result cache enabled ttl=%s", ttl)
	}

	router := api.NewRouter(api.Deps{
		Jobs:      repositories.NewPostgresJobRepository(dtb),
		Vehicles:  repositories.NewPostgresVehicleRepository(dtb),
		Results:   repositories.NewPostgresResultRepository(dtb),
		Optimizer: optimizer,
		Cache:     resultCache,
		Metrics:   appMetrics,
		Registry:  reg,
	})

	// The optimize endpoint can poll the engine for up to ~20s; the write
	// timeout leaves headroom beyond that worst case.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
