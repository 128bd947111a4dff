package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/renshaw/repodigest/apps/server/internal/ingest"
	"github.com/renshaw/repodigest/apps/server/internal/ingest/adapters"
	"github.com/renshaw/repodigest/apps/server/internal/ingest/handler"
	"github.com/renshaw/repodigest/apps/server/internal/ingest/store"
	githubauth "github.com/renshaw/repodigest/apps/server/internal/platform/github"
	"github.com/renshaw/repodigest/apps/server/internal/platform/logger"
	"github.com/renshaw/repodigest/apps/server/internal/platform/telemetry"
	"github.com/renshaw/repodigest/apps/server/internal/platform/validation"
	"github.com/renshaw/repodigest/schemas"
)

// Generate requests download and filter whole repositories, so the write
// timeout is generous. An async task queue would be the next step if runs
// outgrow it.
const requestTimeout = 300 * time.Second

func main() {
	slog := logger.New()

	// --- Observability ---

	// Default the service name before any OTel init.
	if os.Getenv("OTEL_SERVICE_NAME") == "" {
		os.Setenv("OTEL_SERVICE_NAME", "repodigest-server") //nolint:errcheck
	}

	otelEnabled := os.Getenv("OTEL_ENABLED") == "true"
	ctx := context.Background()
	tel, err := telemetry.New(ctx, otelEnabled)
	if err != nil {
		slog.Error("telemetry init failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Error("telemetry shutdown failed", "error", err)
		}
	}()

	// --- Platform: GitHub ---

	// GITHUB_TOKEN is strongly recommended: unauthenticated API calls are
	// rate-limited to a handful per hour. GITHUB_API_URL points the client
	// at a mock server for local development.
	gh := githubauth.NewTokenClient(os.Getenv("GITHUB_TOKEN"), os.Getenv("GITHUB_API_URL"))
	provider := adapters.NewGitHubProvider(gh)
	scratch := adapters.NewTempScratch(os.Getenv("SCRATCH_DIR"))

	// --- Platform: Redis (optional ref cache) ---

	var cache ingest.RefCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		defer rdb.Close()
		cache = store.NewRedisRefCache(rdb)
		slog.Info("ref cache enabled", "addr", addr)
	}

	// --- Service + HTTP ---

	svc := ingest.NewService(provider, scratch, cache, slog)

	router := gin.New()

	validator, err := validation.New(schemas.OpenAPISpec)
	if err != nil {
		slog.Error("openapi validation middleware init failed", "error", err)
		os.Exit(1)
	}

	router.Use(gin.Recovery(), otelgin.Middleware("repodigest-server"), validator)
	handler.RegisterRoutes(router, svc, slog)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      requestTimeout,
	}
	slog.Info("starting repodigest", "port", port)
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
