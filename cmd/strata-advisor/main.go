package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/coastwise/strata-advisor/internal/config"
	"github.com/coastwise/strata-advisor/internal/domain"
	"github.com/coastwise/strata-advisor/internal/knowledge"
	logpkg "github.com/coastwise/strata-advisor/internal/logger"
	"github.com/coastwise/strata-advisor/internal/metrics"
	"github.com/coastwise/strata-advisor/internal/pool"
	chiTransport "github.com/coastwise/strata-advisor/internal/transport/chi"
	openaiProvider "github.com/coastwise/strata-advisor/internal/transport/openai"
	answeruc "github.com/coastwise/strata-advisor/internal/usecase/answer"
	healthuc "github.com/coastwise/strata-advisor/internal/usecase/health"
	ingestuc "github.com/coastwise/strata-advisor/internal/usecase/ingest"
	retrieveuc "github.com/coastwise/strata-advisor/internal/usecase/retrieve"
	"github.com/coastwise/strata-advisor/internal/version"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting strata-advisor API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("embedding_model", cfg.OpenAI.EmbeddingModel),
		zap.String("chat_model", cfg.OpenAI.ChatModel),
	)

	// Register provider metrics explicitly (no init())
	metrics.RegisterProviderMetrics()

	// Build providers. Everything entering a pool must be unit length, so the
	// normalizing decorator wraps the base embedder.
	embedder := domain.NewNormalizedEmbedder(openaiProvider.NewEmbedder(&openaiProvider.EmbedderConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.EmbeddingModel,
		Logger:  logger,
	}))
	completer := openaiProvider.NewCompleter(&openaiProvider.CompleterConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.ChatModel,
		Logger:  logger,
	})

	// Seed the base knowledge pool. An embedding failure here aborts startup:
	// the engine must never serve with a half-seeded catalog.
	basePool := pool.New()
	reportPool := pool.New()
	if err := seedBasePool(context.Background(), basePool, embedder); err != nil {
		logger.Fatal("Failed to seed base knowledge pool", zap.Error(err))
	}
	logger.Info("Base knowledge pool seeded", zap.Int("documents", basePool.Len()))

	// Create use case services
	retrieveSvc := retrieveuc.New(basePool, reportPool, embedder)
	ingestSvc := ingestuc.New(reportPool, embedder).
		WithChunking(cfg.Retrieval.MaxChunkChars, cfg.Retrieval.ChunkOverlap)
	answerSvc := answeruc.New(retrieveSvc, completer)
	healthSvc := healthuc.New(embedder, completer)

	// Create chi server
	server := chiTransport.NewServer(
		answerSvc, ingestSvc, healthSvc,
		int64(cfg.Upload.MaxSizeMB)*1024*1024, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// seedBasePool embeds the static catalog in one batch call and fills the base
// pool. Runs exactly once, before the server accepts requests.
func seedBasePool(ctx context.Context, p *pool.Pool, embedder domain.BatchEmbedder) error {
	docs := knowledge.Catalog()
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}

	res, err := embedder.BatchEmbed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed base catalog: %w", err)
	}
	if len(res.Embeddings) != len(docs) {
		return fmt.Errorf("got %d embeddings for %d catalog documents", len(res.Embeddings), len(docs))
	}

	for i, d := range docs {
		p.Add(d, res.Embeddings[i])
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
