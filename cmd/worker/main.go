// Command worker consumes analysis tasks from the queue and runs the
// matching pipeline.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jobwave/matchengine/internal/adapter/ai/openrouter"
	"github.com/jobwave/matchengine/internal/adapter/ai/stub"
	"github.com/jobwave/matchengine/internal/adapter/cache/rediscache"
	"github.com/jobwave/matchengine/internal/adapter/queue/redpanda"
	"github.com/jobwave/matchengine/internal/adapter/repo/postgres"
	"github.com/jobwave/matchengine/internal/analysis"
	"github.com/jobwave/matchengine/internal/config"
	"github.com/jobwave/matchengine/internal/domain"
	"github.com/jobwave/matchengine/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)
	observability.InitMetrics()

	// Dedicated /metrics endpoint so Prometheus can scrape pipeline metrics
	// from worker processes too.
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":9090", mux); err != nil {
			slog.Error("worker metrics server error", slog.Any("error", err))
		}
	}()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	slog.Info("starting worker", slog.String("env", cfg.AppEnv))

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("database connection failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	jobRepo := postgres.NewJobRepo(pool)
	appRepo := postgres.NewApplicationRepo(pool)
	runRepo := postgres.NewAnalysisRepo(pool)

	cache, err := rediscache.NewFromAddr(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		slog.Error("redis connection failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = cache.Close() }()

	// Without an API key the worker runs against the deterministic stub,
	// which keeps local development offline.
	var aicl domain.AIClient
	if cfg.OpenRouterAPIKey != "" {
		aicl = openrouter.New(cfg)
	} else {
		slog.Warn("no inference API key configured, using stub AI client")
		aicl = stub.New()
	}

	pipeline := analysis.New(jobRepo, appRepo, aicl, analysis.Options{
		Concurrency:         cfg.AnalyzeConcurrency,
		CandidateTimeout:    cfg.AITimeout,
		TopLimit:            cfg.TopCandidatesLimit,
		MaxCompletionTokens: cfg.MaxCompletionTokens,
		SummaryMaxTokens:    cfg.SummaryMaxTokens,
		MaxPromptTokens:     cfg.MaxPromptTokens,
		ChatModel:           cfg.ChatModel,
	})

	consumer, err := redpanda.NewConsumer(cfg.KafkaBrokers, cfg.ConsumerGroup, runRepo, cache, pipeline, cfg.ReportCacheTTL)
	if err != nil {
		slog.Error("redpanda consumer init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = consumer.Close() }()

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("worker consuming", slog.String("group", cfg.ConsumerGroup))
	if err := consumer.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("consumer stopped", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("worker shut down")
}
