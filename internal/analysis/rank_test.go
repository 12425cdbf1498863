package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobwave/matchengine/internal/domain"
)

func resWithScore(id string, overall int) domain.CandidateAnalysisResult {
	return domain.CandidateAnalysisResult{CandidateID: id, OverallScore: overall}
}

func TestRank_StableDescendingWithTies(t *testing.T) {
	t.Parallel()
	in := []domain.CandidateAnalysisResult{
		resWithScore("a", 7),
		resWithScore("b", 9),
		resWithScore("c", 9),
		resWithScore("d", 5),
	}
	out := Rank(in, 3)
	require.Len(t, out, 3)
	// first 9 encountered stays ahead of the second 9
	assert.Equal(t, "b", out[0].CandidateID)
	assert.Equal(t, "c", out[1].CandidateID)
	assert.Equal(t, "a", out[2].CandidateID)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	in := []domain.CandidateAnalysisResult{resWithScore("a", 1), resWithScore("b", 9)}
	_ = Rank(in, 10)
	assert.Equal(t, "a", in[0].CandidateID)
}

func TestRank_LimitLargerThanInput(t *testing.T) {
	t.Parallel()
	in := []domain.CandidateAnalysisResult{resWithScore("a", 3)}
	out := Rank(in, 10)
	assert.Len(t, out, 1)
}

func TestFallbackSummary_Template(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Analyzed 7 candidates. Interviews recommended for top candidates.", fallbackSummary(7))
}
