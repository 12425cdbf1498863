package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jobwave/matchengine/internal/domain"
	"github.com/jobwave/matchengine/internal/observability"
)

// analyzeBatch processes every application with per-item failure isolation
// and bounded concurrency. Two failure classes, deliberately distinct:
//
//   - malformed application / extractor defect: the candidate is dropped
//     and the output shrinks, observable via TotalApplications vs result
//     counts on the report;
//   - unexpected orchestrator failure (the orchestrator itself never
//     errors, so this means a panic or timeout leak): substituted with the
//     safe default, tagged with the candidate's identifiers.
//
// Results land in slots indexed by input position, so invocation order and
// completion order never leak into output ordering.
func (s *Service) analyzeBatch(ctx domain.Context, j domain.JobFeatures, apps []domain.Application) []domain.CandidateAnalysisResult {
	type slot struct {
		res domain.CandidateAnalysisResult
		ok  bool
	}
	slots := make([]slot, len(apps))
	sem := make(chan struct{}, s.opts.Concurrency)
	var wg sync.WaitGroup

	for i, app := range apps {
		if err := validateApplication(app); err != nil {
			slog.Warn("application excluded from analysis",
				slog.String("job_id", j.JobID),
				slog.String("application_id", app.ID),
				slog.String("candidate_id", app.CandidateID),
				slog.Any("error", err))
			observability.AnalysisCandidatesTotal.WithLabelValues("dropped").Inc()
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, app domain.Application) {
			defer wg.Done()
			defer func() { <-sem }()

			feats, ok := s.safeExtract(j.JobID, app)
			if !ok {
				// data defect during extraction: dropped, not defaulted
				observability.AnalysisCandidatesTotal.WithLabelValues("dropped").Inc()
				return
			}

			cctx, cancel := context.WithTimeout(ctx, s.opts.CandidateTimeout)
			defer cancel()
			slots[i] = slot{res: s.safeAnalyze(cctx, feats, j), ok: true}
		}(i, app)
	}
	wg.Wait()

	out := make([]domain.CandidateAnalysisResult, 0, len(apps))
	for _, sl := range slots {
		if sl.ok {
			out = append(out, sl.res)
		}
	}
	return out
}

// safeExtract runs the extractor with panic containment. The extractor
// normalizes malformed fields itself; a panic here is a data defect and the
// candidate is excluded rather than defaulted.
func (s *Service) safeExtract(jobID string, app domain.Application) (feats domain.CandidateFeatures, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("extractor panic, excluding candidate",
				slog.String("job_id", jobID),
				slog.String("application_id", app.ID),
				slog.String("candidate_id", app.CandidateID),
				slog.Any("recover", r))
			ok = false
		}
	}()
	return s.extract(app.Candidate, app), true
}

// safeAnalyze wraps AnalyzeOne with panic containment so one candidate can
// never take down the batch; the panic becomes a safe default.
func (s *Service) safeAnalyze(ctx domain.Context, c domain.CandidateFeatures, j domain.JobFeatures) (res domain.CandidateAnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("analysis panic, using safe default",
				slog.String("candidate_id", c.CandidateID),
				slog.String("application_id", c.ApplicationID),
				slog.Any("recover", r))
			observability.AnalysisCandidatesTotal.WithLabelValues("defaulted").Inc()
			res = domain.DefaultAnalysisResult(c.CandidateID, c.ApplicationID, fmt.Sprintf("analysis panic: %v", r))
		}
	}()
	return s.AnalyzeOne(ctx, c, j)
}

func validateApplication(app domain.Application) error {
	if app.ID == "" {
		return fmt.Errorf("%w: application id empty", domain.ErrInvalidArgument)
	}
	if app.CandidateID == "" || app.Candidate.ID == "" {
		return fmt.Errorf("%w: candidate missing on application %s", domain.ErrInvalidArgument, app.ID)
	}
	return nil
}
