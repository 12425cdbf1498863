package analysis

import (
	"fmt"
	"strings"

	"github.com/jobwave/matchengine/internal/domain"
	"github.com/jobwave/matchengine/pkg/textx"
)

const candidateSystemPrompt = `You are a senior technical recruiter assessing how well a candidate fits a job opening. Be factual and constructive. Respond with a single JSON object and nothing else: no prose, no code fences.`

const candidateSchema = `Respond with exactly this JSON shape:
{
  "overall_score": <integer 1-10>,
  "match_score": <integer 0-100>,
  "fit_level": "low" | "medium" | "high",
  "strengths": [<strings>],
  "weaknesses": [<strings>],
  "recommendations": [<strings>],
  "notes": <string>
}`

// buildCandidatePrompt renders both feature sets plus the deterministic
// match score into the assessment prompt. All free text was length-capped
// by the extractor, which is what keeps this prompt bounded.
func buildCandidatePrompt(c domain.CandidateFeatures, j domain.JobFeatures, ms domain.MatchScore) (system, user string) {
	var b strings.Builder

	b.WriteString("Job Opening:\n")
	writeField(&b, "Title", j.Title)
	writeField(&b, "Description", j.Description)
	writeField(&b, "Requirements", j.Requirements)
	writeField(&b, "Responsibilities", j.Responsibilities)
	writeField(&b, "Location", j.Location)
	writeField(&b, "Employment type", j.EmploymentType)
	writeField(&b, "Seniority", j.ExperienceLevel)
	if j.SalaryMin != nil && j.SalaryMax != nil {
		fmt.Fprintf(&b, "Salary range: %d - %d\n", *j.SalaryMin, *j.SalaryMax)
	}
	if len(j.Skills) > 0 {
		b.WriteString("Skills:\n")
		for _, s := range j.Skills {
			req := "nice to have"
			if s.Required {
				req = "required"
			}
			fmt.Fprintf(&b, "  - %s (level %d, %s)\n", s.Name, s.Level, req)
		}
	}

	b.WriteString("\nCandidate:\n")
	writeField(&b, "Name", c.Name)
	writeField(&b, "Location", c.Location)
	writeField(&b, "Bio", c.Bio)
	fmt.Fprintf(&b, "Total experience: %.1f years\n", c.TotalYears)
	if c.ExpectedSalary != nil {
		fmt.Fprintf(&b, "Expected salary: %d\n", *c.ExpectedSalary)
	}
	if len(c.Skills) > 0 {
		b.WriteString("Skills:\n")
		for _, s := range c.Skills {
			fmt.Fprintf(&b, "  - %s (level %d)\n", s.Name, s.Level)
		}
	}
	if len(c.Experiences) > 0 {
		b.WriteString("Experience:\n")
		for _, e := range c.Experiences {
			fmt.Fprintf(&b, "  - %s at %s (%s): %s\n", e.Position, e.Company, e.Duration, e.Description)
		}
	}
	if len(c.Educations) > 0 {
		b.WriteString("Education:\n")
		for _, e := range c.Educations {
			fmt.Fprintf(&b, "  - %s, %s in %s (%s)\n", e.Institution, e.Degree, e.Field, e.Graduation)
		}
	}
	writeField(&b, "Resume summary", c.ResumeSummary)
	writeField(&b, "Cover letter", c.CoverLetter)

	fmt.Fprintf(&b, "\nPre-computed match signals (0-100): skill=%d experience=%d location=%d salary=%d composite=%d\n",
		ms.Skill, ms.Experience, ms.Location, ms.Salary, ms.Composite)

	b.WriteString("\n")
	b.WriteString(candidateSchema)
	return candidateSystemPrompt, b.String()
}

const summarySystemPrompt = `You are a senior technical recruiter. Write a short plain-text hiring summary, three sentences at most. No JSON, no markdown.`

// buildSummaryPrompt covers only the top results; the batch summary is a
// second, much smaller AI call with its own fallback.
func buildSummaryPrompt(top []domain.CandidateAnalysisResult, j domain.JobFeatures, total int) (system, user string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Position: %s\n", j.Title)
	fmt.Fprintf(&b, "Applications analyzed: %d\n\nTop candidates:\n", total)
	n := len(top)
	if n > 3 {
		n = 3
	}
	for i, r := range top[:n] {
		fmt.Fprintf(&b, "%d. overall %d/10, match %d/100, fit %s; strengths: %s\n",
			i+1, r.OverallScore, r.MatchScore, r.FitLevel, strings.Join(r.Strengths, "; "))
	}
	b.WriteString("\nSummarize the state of this applicant pool and who should be interviewed first.")
	return summarySystemPrompt, b.String()
}

// writeField renders one prompt line. Free text is collapsed to a single
// line so the prompt stays line-oriented.
func writeField(b *strings.Builder, name, val string) {
	if val == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", name, textx.CollapseSpaces(val))
}
