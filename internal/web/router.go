package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/typeflow/typeflow/internal/db"
	"github.com/typeflow/typeflow/internal/health"
	"github.com/typeflow/typeflow/internal/web/handlers"
	"github.com/typeflow/typeflow/internal/web/middleware"
	"github.com/typeflow/typeflow/internal/words"
)

type Router struct {
	repo  db.Repository
	log   *slog.Logger
	words words.List

	// RateLimit is the number of writes allowed per IP per RateWindow seconds.
	RateLimit  int
	RateWindow int
}

func NewRouter(repo db.Repository, log *slog.Logger, list words.List) *Router {
	return &Router{
		repo:       repo,
		log:        log,
		words:      list,
		RateLimit:  30,
		RateWindow: 60,
	}
}

// Handler builds the HTTP handler. Background work it starts stops with ctx.
func (r *Router) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()

	wordHandler := handlers.NewWordHandler(r.words, r.log)
	displayHandler := handlers.NewDisplayHandler(r.log)
	resultHandler := handlers.NewResultHandler(r.repo, r.log)

	rateLimiter := middleware.NewRateLimiter(ctx, r.RateLimit, r.RateWindow)

	mux.Handle("GET /api/v1/words",
		middleware.Chain(
			http.HandlerFunc(wordHandler.List),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("no-store"),
		),
	)

	mux.Handle("POST /api/v1/display",
		middleware.Chain(
			http.HandlerFunc(displayHandler.Split),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
		),
	)

	mux.Handle("GET /api/v1/results",
		middleware.Chain(
			http.HandlerFunc(resultHandler.List),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, s-maxage=5, max-age=0"),
		),
	)

	mux.Handle("GET /api/v1/results/{id}",
		middleware.Chain(
			http.HandlerFunc(resultHandler.Get),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, s-maxage=60, max-age=60"),
		),
	)

	mux.Handle("POST /api/v1/results",
		middleware.Chain(
			http.HandlerFunc(resultHandler.Create),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(rateLimiter),
		),
	)

	mux.Handle("GET /healthz", health.Handler(2*time.Second, map[string]health.Pinger{"db": r.repo}))
	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.CORS(middleware.RequestID()(mux))
}
