// Command seed loads YAML fixtures into the database.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/jobwave/matchengine/internal/adapter/repo/postgres"
	"github.com/jobwave/matchengine/internal/config"
	"github.com/jobwave/matchengine/internal/observability"
	"github.com/jobwave/matchengine/internal/seed"
)

func main() {
	path := flag.String("f", "fixtures/dev.yaml", "path to the fixture file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}
	slog.SetDefault(observability.SetupLogger(cfg))

	fixtures, err := seed.LoadFile(*path)
	if err != nil {
		slog.Error("fixture load failed", slog.String("path", *path), slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool, fixtures); err != nil {
		slog.Error("seed failed", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("seed complete",
		slog.Int("jobs", len(fixtures.Jobs)),
		slog.Int("candidates", len(fixtures.Candidates)),
		slog.Int("applications", len(fixtures.Applications)))
}
