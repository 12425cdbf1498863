package analysis

import (
	"fmt"
	"log/slog"

	"github.com/jobwave/matchengine/internal/domain"
	"github.com/jobwave/matchengine/internal/match"
	"github.com/jobwave/matchengine/internal/observability"
)

// AnalyzeOne assesses a single candidate/job pair. It never returns an
// error: every failure path resolves to the safe default result, with the
// failure reason in AINotes and the raw response preserved in logs. The
// deterministic match score is always attached, defaulted or not.
func (s *Service) AnalyzeOne(ctx domain.Context, c domain.CandidateFeatures, j domain.JobFeatures) domain.CandidateAnalysisResult {
	ms := match.Score(c, j)
	observability.CompositeScoreHistogram.Observe(float64(ms.Composite))

	system, user := buildCandidatePrompt(c, j, ms)
	if n := s.tokens.Count(s.opts.ChatModel, user); n > s.opts.MaxPromptTokens {
		// Extraction caps should make this unreachable; log loudly if not.
		slog.Warn("prompt exceeds token budget",
			slog.String("candidate_id", c.CandidateID),
			slog.Int("tokens", n),
			slog.Int("budget", s.opts.MaxPromptTokens))
	}

	raw, err := s.ai.ChatJSON(ctx, system, user, s.opts.MaxCompletionTokens)
	if err != nil {
		slog.Warn("inference call failed, using safe default",
			slog.String("candidate_id", c.CandidateID),
			slog.String("application_id", c.ApplicationID),
			slog.Any("error", err))
		observability.AnalysisCandidatesTotal.WithLabelValues("defaulted").Inc()
		return s.defaulted(c, ms, fmt.Sprintf("inference call failed: %v", err))
	}

	res, err := parseAnalysis(raw)
	if err != nil {
		// Keep the raw text in logs for offline inspection; it is never
		// surfaced to the caller.
		slog.Warn("inference response unparseable, using safe default",
			slog.String("candidate_id", c.CandidateID),
			slog.String("application_id", c.ApplicationID),
			slog.String("raw_response", raw),
			slog.Any("error", err))
		observability.AnalysisCandidatesTotal.WithLabelValues("defaulted").Inc()
		return s.defaulted(c, ms, fmt.Sprintf("response parse failed: %v", err))
	}

	res.CandidateID = c.CandidateID
	res.ApplicationID = c.ApplicationID
	res.Match = ms
	observability.AnalysisCandidatesTotal.WithLabelValues("analyzed").Inc()
	return res
}

func (s *Service) defaulted(c domain.CandidateFeatures, ms domain.MatchScore, reason string) domain.CandidateAnalysisResult {
	res := domain.DefaultAnalysisResult(c.CandidateID, c.ApplicationID, reason)
	res.Match = ms
	return res
}
