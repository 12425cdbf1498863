package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jobwave/matchengine/internal/domain"
)

// ReportService provides read access to analysis runs and their reports.
// Completed reports are served cache-first; the cache is strictly an
// optimization and every miss or cache error falls through to the store.
type ReportService struct {
	Runs     domain.AnalysisRepository
	Cache    domain.ReportCache
	CacheTTL time.Duration
}

// NewReportService constructs a ReportService.
func NewReportService(r domain.AnalysisRepository, c domain.ReportCache, ttl time.Duration) ReportService {
	return ReportService{Runs: r, Cache: c, CacheTTL: ttl}
}

// Status returns the run's current lifecycle state.
func (s ReportService) Status(ctx domain.Context, runID string) (domain.AnalysisRun, error) {
	if runID == "" {
		return domain.AnalysisRun{}, fmt.Errorf("%w: run id required", domain.ErrInvalidArgument)
	}
	run, err := s.Runs.GetRun(ctx, runID)
	if err != nil {
		return domain.AnalysisRun{}, fmt.Errorf("op=report.get_run: %w", err)
	}
	return run, nil
}

// Report returns the completed report for a run. A run that is still
// queued or processing yields ErrConflict so the handler can answer with
// the run status instead of a report.
func (s ReportService) Report(ctx domain.Context, runID string) (domain.JobAnalysisReport, error) {
	run, err := s.Status(ctx, runID)
	if err != nil {
		return domain.JobAnalysisReport{}, err
	}
	switch run.Status {
	case domain.AnalysisCompleted:
	case domain.AnalysisFailed:
		return domain.JobAnalysisReport{}, fmt.Errorf("%w: run %s failed: %s", domain.ErrConflict, runID, run.Error)
	default:
		return domain.JobAnalysisReport{}, fmt.Errorf("%w: run %s is %s", domain.ErrConflict, runID, run.Status)
	}

	if s.Cache != nil {
		rep, ok, cerr := s.Cache.Get(ctx, runID)
		if cerr != nil {
			slog.Warn("report cache read failed", slog.String("run_id", runID), slog.Any("error", cerr))
		} else if ok {
			return rep, nil
		}
	}

	rep, err := s.Runs.GetReport(ctx, runID)
	if err != nil {
		return domain.JobAnalysisReport{}, fmt.Errorf("op=report.get_report: %w", err)
	}
	if s.Cache != nil {
		if cerr := s.Cache.Put(ctx, runID, rep, s.CacheTTL); cerr != nil {
			slog.Warn("report cache write failed", slog.String("run_id", runID), slog.Any("error", cerr))
		}
	}
	return rep, nil
}
