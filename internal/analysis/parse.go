package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jobwave/matchengine/internal/domain"
)

type analysisPayload struct {
	OverallScore    int      `json:"overall_score"`
	MatchScore      int      `json:"match_score"`
	FitLevel        string   `json:"fit_level"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	Notes           string   `json:"notes"`
}

var trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

// cleanModelJSON strips the markup models like to wrap JSON in: code
// fences, leading/trailing prose, trailing commas. It never fails; the
// subsequent parse decides whether the result is usable.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	// Extract the first balanced JSON object from mixed content.
	if start := strings.Index(s, "{"); start >= 0 {
		depth := 0
	scan:
		for i := start; i < len(s); i++ {
			switch s[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					s = s[start : i+1]
					break scan
				}
			}
		}
	}
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// parseAnalysis parses and validates one model response against the fixed
// result schema. Any violation is a schema failure: the caller substitutes
// the safe default and keeps the raw text in logs only.
func parseAnalysis(raw string) (domain.CandidateAnalysisResult, error) {
	var p analysisPayload
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &p); err != nil {
		return domain.CandidateAnalysisResult{}, fmt.Errorf("%w: %v", domain.ErrSchemaInvalid, err)
	}
	if p.OverallScore < 1 || p.OverallScore > 10 {
		return domain.CandidateAnalysisResult{}, fmt.Errorf("%w: overall_score %d out of range", domain.ErrSchemaInvalid, p.OverallScore)
	}
	if p.MatchScore < 0 || p.MatchScore > 100 {
		return domain.CandidateAnalysisResult{}, fmt.Errorf("%w: match_score %d out of range", domain.ErrSchemaInvalid, p.MatchScore)
	}
	fit := domain.FitLevel(strings.ToLower(strings.TrimSpace(p.FitLevel)))
	if !domain.ValidFitLevel(fit) {
		return domain.CandidateAnalysisResult{}, fmt.Errorf("%w: fit_level %q", domain.ErrSchemaInvalid, p.FitLevel)
	}
	return domain.CandidateAnalysisResult{
		OverallScore:    p.OverallScore,
		MatchScore:      p.MatchScore,
		FitLevel:        fit,
		Strengths:       nonNil(p.Strengths),
		Weaknesses:      nonNil(p.Weaknesses),
		Recommendations: nonNil(p.Recommendations),
		AINotes:         strings.TrimSpace(p.Notes),
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
