package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobwave/matchengine/internal/domain"
)

func TestDefaultAnalysisResult_Values(t *testing.T) {
	t.Parallel()
	r := domain.DefaultAnalysisResult("cand-1", "app-1", "inference call failed")
	assert.Equal(t, "cand-1", r.CandidateID)
	assert.Equal(t, "app-1", r.ApplicationID)
	assert.Equal(t, 5, r.OverallScore)
	assert.Equal(t, 50, r.MatchScore)
	assert.Equal(t, domain.FitMedium, r.FitLevel)
	assert.Equal(t, []string{"Requires manual review"}, r.Strengths)
	assert.Equal(t, []string{"Analysis failed"}, r.Weaknesses)
	assert.Equal(t, []string{"Conduct interview"}, r.Recommendations)
	assert.Equal(t, "inference call failed", r.AINotes)
}

func TestValidFitLevel(t *testing.T) {
	t.Parallel()
	assert.True(t, domain.ValidFitLevel(domain.FitLow))
	assert.True(t, domain.ValidFitLevel(domain.FitMedium))
	assert.True(t, domain.ValidFitLevel(domain.FitHigh))
	assert.False(t, domain.ValidFitLevel(domain.FitLevel("great")))
	assert.False(t, domain.ValidFitLevel(domain.FitLevel("")))
}
