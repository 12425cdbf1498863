package domain

import "time"

// FitLevel is the coarse three-bucket suitability classification.
type FitLevel string

// Fit levels.
const (
	FitLow    FitLevel = "low"
	FitMedium FitLevel = "medium"
	FitHigh   FitLevel = "high"
)

// ValidFitLevel reports whether s is one of the allowed fit levels.
func ValidFitLevel(s FitLevel) bool {
	return s == FitLow || s == FitMedium || s == FitHigh
}

// CandidateAnalysisResult is the per-candidate outcome of one batch run.
// It is always fully populated: either with genuine AI output or with the
// safe default from DefaultAnalysisResult. Consumers cannot and should not
// distinguish the two by shape.
type CandidateAnalysisResult struct {
	CandidateID     string   `json:"candidate_id"`
	ApplicationID   string   `json:"application_id"`
	OverallScore    int      `json:"overall_score"` // 1-10
	MatchScore      int      `json:"match_score"`   // 0-100, AI-produced
	FitLevel        FitLevel `json:"fit_level"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	AINotes         string   `json:"ai_notes"`
	// Match is the deterministic score, computed independently of the AI
	// match_score above.
	Match MatchScore `json:"match"`
}

// DefaultAnalysisResult is the safe fallback used whenever the AI-assisted
// path fails. It is a first-class contract: rankers and report consumers
// treat it identically to a genuine result.
func DefaultAnalysisResult(candidateID, applicationID, reason string) CandidateAnalysisResult {
	return CandidateAnalysisResult{
		CandidateID:     candidateID,
		ApplicationID:   applicationID,
		OverallScore:    5,
		MatchScore:      50,
		FitLevel:        FitMedium,
		Strengths:       []string{"Requires manual review"},
		Weaknesses:      []string{"Analysis failed"},
		Recommendations: []string{"Conduct interview"},
		AINotes:         reason,
	}
}

// JobAnalysisReport is the aggregate produced by one batch run. Immutable
// after construction. TotalApplications counts every application considered;
// a shorter TopCandidates list than the applicant pool tells the caller that
// candidates were either ranked out or excluded as malformed.
type JobAnalysisReport struct {
	JobID             string                    `json:"job_id"`
	TotalApplications int                       `json:"total_applications"`
	TopCandidates     []CandidateAnalysisResult `json:"top_candidates"`
	AnalysisSummary   string                    `json:"analysis_summary"`
	ProcessingTimeMs  int64                     `json:"processing_time_ms"`
	GeneratedAt       time.Time                 `json:"generated_at"`
}
