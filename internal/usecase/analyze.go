// Package usecase contains the application services sitting between the
// HTTP adapter and the asynchronous analysis pipeline.
package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jobwave/matchengine/internal/domain"
)

// AnalyzeService accepts analysis requests: it verifies the job exists,
// records a run, and enqueues the batch task for a worker to pick up.
type AnalyzeService struct {
	Jobs  domain.JobRepository
	Runs  domain.AnalysisRepository
	Queue domain.Queue
}

// NewAnalyzeService constructs an AnalyzeService with its dependencies.
func NewAnalyzeService(j domain.JobRepository, r domain.AnalysisRepository, q domain.Queue) AnalyzeService {
	return AnalyzeService{Jobs: j, Runs: r, Queue: q}
}

// Request validates the input, creates a queued run and enqueues the task.
// The job is resolved up front so a request against a missing job fails
// here with ErrNotFound instead of surfacing later as a failed run.
func (s AnalyzeService) Request(ctx domain.Context, jobID string, topLimit int) (string, error) {
	if jobID == "" {
		return "", fmt.Errorf("%w: job id required", domain.ErrInvalidArgument)
	}
	if topLimit < 0 {
		return "", fmt.Errorf("%w: top limit must not be negative", domain.ErrInvalidArgument)
	}
	if _, err := s.Jobs.Get(ctx, jobID); err != nil {
		return "", fmt.Errorf("op=analyze.job_get: %w", err)
	}

	now := time.Now().UTC()
	run := domain.AnalysisRun{
		JobID:     jobID,
		Status:    domain.AnalysisQueued,
		TopLimit:  topLimit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	runID, err := s.Runs.CreateRun(ctx, run)
	if err != nil {
		return "", fmt.Errorf("op=analyze.create_run: %w", err)
	}

	payload := domain.AnalyzeTaskPayload{RunID: runID, JobID: jobID, TopLimit: topLimit}
	if _, err := s.Queue.EnqueueAnalyze(ctx, payload); err != nil {
		msg := "enqueue failed"
		_ = s.Runs.UpdateStatus(ctx, runID, domain.AnalysisFailed, &msg)
		return "", fmt.Errorf("op=analyze.enqueue: %w", err)
	}
	slog.Info("analysis run enqueued",
		slog.String("run_id", runID),
		slog.String("job_id", jobID),
		slog.Int("top_limit", topLimit))
	return runID, nil
}
