// Package match implements feature extraction and the deterministic
// multi-factor match scorer. Everything here is pure: no I/O, no clocks
// except the injected now for duration math, no failure modes beyond
// malformed input, which is normalized rather than raised.
package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/jobwave/matchengine/internal/domain"
	"github.com/jobwave/matchengine/pkg/textx"
)

// Truncation caps are fixed contract constants: they bound the size of
// every downstream prompt. Changing them is an interface change, not tuning.
const (
	MaxBioLen            = 200
	MaxResumeSummaryLen  = 300
	MaxCoverLetterLen    = 500
	MaxJobTextLen        = 500
	MaxExperienceDescLen = 200
)

// ExtractCandidate turns a raw candidate and application into the bounded
// representation the scorer and prompt builder consume. Missing or malformed
// fields degrade to empty strings and collections.
func ExtractCandidate(c domain.Candidate, app domain.Application) domain.CandidateFeatures {
	return extractCandidateAt(c, app, time.Now().UTC())
}

func extractCandidateAt(c domain.Candidate, app domain.Application, now time.Time) domain.CandidateFeatures {
	f := domain.CandidateFeatures{
		CandidateID:    c.ID,
		ApplicationID:  app.ID,
		Name:           strings.TrimSpace(c.FirstName + " " + c.LastName),
		Location:       strings.TrimSpace(c.Location),
		Bio:            textx.Truncate(textx.Sanitize(c.Bio), MaxBioLen),
		ResumeSummary:  textx.Truncate(textx.Sanitize(c.ResumeSummary), MaxResumeSummaryLen),
		CoverLetter:    textx.Truncate(textx.Sanitize(app.CoverLetter), MaxCoverLetterLen),
		ExpectedSalary: app.ExpectedSalary,
		Skills:         make([]domain.SkillFeature, 0, len(c.Skills)),
		Experiences:    make([]domain.ExperienceFeature, 0, len(c.Experiences)),
		Educations:     make([]domain.EducationFeature, 0, len(c.Educations)),
	}
	for _, s := range c.Skills {
		if s.SkillID == "" {
			continue
		}
		f.Skills = append(f.Skills, domain.SkillFeature{
			SkillID: s.SkillID,
			Name:    strings.TrimSpace(s.Name),
			Level:   clampInt(s.Level, 1, 5),
		})
	}
	var totalMonths int
	for _, e := range c.Experiences {
		months, negative := durationMonths(e.StartDate, e.EndDate, now)
		if negative {
			f.NegativeDurations++
		}
		totalMonths += months
		f.Experiences = append(f.Experiences, domain.ExperienceFeature{
			Company:     strings.TrimSpace(e.Company),
			Position:    strings.TrimSpace(e.Position),
			Duration:    formatDuration(months),
			Description: textx.Truncate(textx.Sanitize(e.Description), MaxExperienceDescLen),
		})
	}
	f.TotalYears = float64(totalMonths) / 12
	for _, ed := range c.Educations {
		grad := "in progress"
		if ed.EndDate != nil {
			grad = fmt.Sprintf("%d", ed.EndDate.Year())
		}
		f.Educations = append(f.Educations, domain.EducationFeature{
			Institution: strings.TrimSpace(ed.Institution),
			Degree:      strings.TrimSpace(ed.Degree),
			Field:       strings.TrimSpace(ed.Field),
			Graduation:  grad,
		})
	}
	return f
}

// ExtractJob turns a raw job posting into the bounded representation the
// scorer and prompt builder consume.
func ExtractJob(j domain.Job) domain.JobFeatures {
	f := domain.JobFeatures{
		JobID:            j.ID,
		Title:            strings.TrimSpace(j.Title),
		Description:      textx.Truncate(textx.Sanitize(j.Description), MaxJobTextLen),
		Requirements:     textx.Truncate(textx.Sanitize(j.Requirements), MaxJobTextLen),
		Responsibilities: textx.Truncate(textx.Sanitize(j.Responsibilities), MaxJobTextLen),
		Location:         strings.TrimSpace(j.Location),
		EmploymentType:   strings.TrimSpace(j.EmploymentType),
		ExperienceLevel:  strings.ToLower(strings.TrimSpace(j.ExperienceLevel)),
		SalaryMin:        j.SalaryMin,
		SalaryMax:        j.SalaryMax,
		Skills:           make([]domain.JobSkillFeature, 0, len(j.Skills)),
	}
	for _, s := range j.Skills {
		if s.SkillID == "" {
			continue
		}
		f.Skills = append(f.Skills, domain.JobSkillFeature{
			SkillID:  s.SkillID,
			Name:     strings.TrimSpace(s.Name),
			Required: s.Required,
			Level:    clampInt(s.Level, 1, 5),
		})
	}
	return f
}

// durationMonths computes (end ?? now) - start in whole months, clamped to
// zero when the end date precedes the start date.
func durationMonths(start time.Time, end *time.Time, now time.Time) (months int, negative bool) {
	if start.IsZero() {
		return 0, false
	}
	until := now
	if end != nil {
		until = *end
	}
	if until.Before(start) {
		return 0, true
	}
	months = (until.Year()-start.Year())*12 + int(until.Month()) - int(start.Month())
	if until.Day() < start.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return months, false
}

// formatDuration renders a month count as whole years + remaining months.
func formatDuration(months int) string {
	years := months / 12
	rem := months % 12
	switch {
	case years == 0 && rem == 0:
		return "less than a month"
	case years == 0:
		return fmt.Sprintf("%d mo", rem)
	case rem == 0:
		return fmt.Sprintf("%d yr", years)
	default:
		return fmt.Sprintf("%d yr %d mo", years, rem)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
