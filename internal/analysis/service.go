// Package analysis orchestrates the candidate-to-job analysis pipeline:
// feature extraction, deterministic scoring, per-candidate AI assessment,
// ranking, and batch summarization.
package analysis

import (
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/jobwave/matchengine/internal/adapter/ai/tokencount"
	"github.com/jobwave/matchengine/internal/domain"
	"github.com/jobwave/matchengine/internal/match"
	"github.com/jobwave/matchengine/internal/observability"
)

// Options tunes the pipeline. Zero values fall back to sane defaults.
type Options struct {
	// Concurrency bounds the number of in-flight AI calls per batch.
	Concurrency int
	// CandidateTimeout bounds each per-candidate analysis, inference call
	// included. A timeout degrades to the safe default, never to an error.
	CandidateTimeout time.Duration
	// TopLimit is the default report truncation when the caller passes none.
	TopLimit            int
	MaxCompletionTokens int
	SummaryMaxTokens    int
	// MaxPromptTokens is the prompt budget checked before each AI call.
	MaxPromptTokens int
	// ChatModel selects the tokenizer used for budgeting.
	ChatModel string
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = 4
	}
	if o.CandidateTimeout <= 0 {
		o.CandidateTimeout = 45 * time.Second
	}
	if o.TopLimit <= 0 {
		o.TopLimit = 5
	}
	if o.MaxCompletionTokens <= 0 {
		o.MaxCompletionTokens = 1024
	}
	if o.SummaryMaxTokens <= 0 {
		o.SummaryMaxTokens = 256
	}
	if o.MaxPromptTokens <= 0 {
		o.MaxPromptTokens = 6000
	}
	return o
}

// Service runs the full analysis pipeline for one job's applicant pool.
// All collaborators are injected; nothing here touches ambient globals, so
// the pipeline is testable without any live external service.
type Service struct {
	jobs   domain.JobRepository
	apps   domain.ApplicationRepository
	ai     domain.AIClient
	opts   Options
	tokens *tokencount.Counter

	// extract is swappable in tests to exercise extractor failure paths.
	extract func(domain.Candidate, domain.Application) domain.CandidateFeatures
}

// New constructs the analysis service.
func New(jobs domain.JobRepository, apps domain.ApplicationRepository, ai domain.AIClient, opts Options) *Service {
	return &Service{
		jobs:    jobs,
		apps:    apps,
		ai:      ai,
		opts:    opts.withDefaults(),
		tokens:  tokencount.NewCounter(),
		extract: match.ExtractCandidate,
	}
}

// AnalyzeJob runs the whole pipeline for one job and returns the finished
// report. The only fatal failure is the job (or its pool) being unloadable;
// everything per-candidate degrades inside the batch. The caller always gets
// either a complete report or an upfront error, never a partial report.
func (s *Service) AnalyzeJob(ctx domain.Context, jobID string, limit int) (domain.JobAnalysisReport, error) {
	tracer := otel.Tracer("analysis")
	ctx, span := tracer.Start(ctx, "analysis.AnalyzeJob")
	defer span.End()

	start := time.Now()
	if limit <= 0 {
		limit = s.opts.TopLimit
	}

	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return domain.JobAnalysisReport{}, fmt.Errorf("op=analysis.job_get: %w", err)
	}
	apps, err := s.apps.ListByJob(ctx, jobID)
	if err != nil {
		return domain.JobAnalysisReport{}, fmt.Errorf("op=analysis.list_applications: %w", err)
	}

	jobFeat := match.ExtractJob(job)
	results := s.analyzeBatch(ctx, jobFeat, apps)
	top := Rank(results, limit)
	summary := s.summarize(ctx, top, jobFeat, len(apps))

	elapsed := time.Since(start)
	observability.AnalysisBatchDuration.Observe(elapsed.Seconds())
	slog.Info("job analysis finished",
		slog.String("job_id", jobID),
		slog.Int("applications", len(apps)),
		slog.Int("results", len(results)),
		slog.Int("top", len(top)),
		slog.Duration("elapsed", elapsed))

	return domain.JobAnalysisReport{
		JobID:             jobID,
		TotalApplications: len(apps),
		TopCandidates:     top,
		AnalysisSummary:   summary,
		ProcessingTimeMs:  elapsed.Milliseconds(),
		GeneratedAt:       time.Now().UTC(),
	}, nil
}
