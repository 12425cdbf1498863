package analysis

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jobwave/matchengine/internal/domain"
)

// Rank sorts results by overall score descending and truncates to limit.
// The sort is stable: equal scores keep their original input order, so
// repeated runs over identical input rank identically regardless of how
// the batch was scheduled.
func Rank(results []domain.CandidateAnalysisResult, limit int) []domain.CandidateAnalysisResult {
	out := make([]domain.CandidateAnalysisResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].OverallScore > out[b].OverallScore
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// summarize produces the batch summary with the same never-fail contract
// as per-candidate analysis: any AI failure falls back to a templated
// sentence.
func (s *Service) summarize(ctx domain.Context, top []domain.CandidateAnalysisResult, j domain.JobFeatures, total int) string {
	if len(top) == 0 {
		return fmt.Sprintf("Analyzed %d candidates. No candidates available for ranking.", total)
	}
	system, user := buildSummaryPrompt(top, j, total)
	raw, err := s.ai.ChatJSON(ctx, system, user, s.opts.SummaryMaxTokens)
	if err != nil {
		slog.Warn("summary inference failed, using fallback",
			slog.String("job_id", j.JobID),
			slog.Any("error", err))
		return fallbackSummary(total)
	}
	summary := strings.TrimSpace(raw)
	if summary == "" {
		return fallbackSummary(total)
	}
	return summary
}

func fallbackSummary(total int) string {
	return fmt.Sprintf("Analyzed %d candidates. Interviews recommended for top candidates.", total)
}
