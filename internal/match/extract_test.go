package match

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobwave/matchengine/internal/domain"
)

var testNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func tp(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestExtractCandidate_TruncationCaps(t *testing.T) {
	t.Parallel()
	c := domain.Candidate{
		ID:            "cand-1",
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Bio:           strings.Repeat("b", 1000),
		ResumeSummary: strings.Repeat("r", 1000),
		Experiences: []domain.Experience{
			{Company: "Acme", Position: "Engineer", StartDate: testNow.AddDate(-2, 0, 0), Description: strings.Repeat("d", 1000)},
		},
	}
	app := domain.Application{ID: "app-1", CoverLetter: strings.Repeat("c", 1000)}
	f := extractCandidateAt(c, app, testNow)

	assert.Len(t, []rune(f.Bio), MaxBioLen)
	assert.Len(t, []rune(f.ResumeSummary), MaxResumeSummaryLen)
	assert.Len(t, []rune(f.CoverLetter), MaxCoverLetterLen)
	require.Len(t, f.Experiences, 1)
	assert.Len(t, []rune(f.Experiences[0].Description), MaxExperienceDescLen)
	assert.Equal(t, "Ada Lovelace", f.Name)
}

func TestExtractCandidate_DurationYearsAndMonths(t *testing.T) {
	t.Parallel()
	c := domain.Candidate{
		ID: "cand-1",
		Experiences: []domain.Experience{
			{StartDate: *tp(2020, 1, 15), EndDate: tp(2023, 4, 15)}, // 3 yr 3 mo
			{StartDate: *tp(2024, 1, 1)},                            // open-ended, runs to now
		},
	}
	f := extractCandidateAt(c, domain.Application{}, testNow)
	require.Len(t, f.Experiences, 2)
	assert.Equal(t, "3 yr 3 mo", f.Experiences[0].Duration)
	assert.Equal(t, "2 yr 5 mo", f.Experiences[1].Duration)
	assert.InDelta(t, 5.66, f.TotalYears, 0.2)
	assert.Zero(t, f.NegativeDurations)
}

func TestExtractCandidate_NegativeDurationClampedAndFlagged(t *testing.T) {
	t.Parallel()
	c := domain.Candidate{
		ID: "cand-1",
		Experiences: []domain.Experience{
			{StartDate: *tp(2024, 1, 1), EndDate: tp(2022, 1, 1)},
		},
	}
	f := extractCandidateAt(c, domain.Application{}, testNow)
	require.Len(t, f.Experiences, 1)
	assert.Equal(t, "less than a month", f.Experiences[0].Duration)
	assert.Equal(t, 1, f.NegativeDurations)
	assert.Zero(t, f.TotalYears)
}

func TestExtractCandidate_MalformedInputNormalized(t *testing.T) {
	t.Parallel()
	f := extractCandidateAt(domain.Candidate{}, domain.Application{}, testNow)
	assert.Empty(t, f.Name)
	assert.NotNil(t, f.Skills)
	assert.NotNil(t, f.Experiences)
	assert.NotNil(t, f.Educations)

	// skills without a stable id are dropped, levels clamped to 1..5
	c := domain.Candidate{Skills: []domain.CandidateSkill{
		{SkillID: "", Name: "ghost", Level: 3},
		{SkillID: "s-1", Name: "Go", Level: 9},
	}}
	f = extractCandidateAt(c, domain.Application{}, testNow)
	require.Len(t, f.Skills, 1)
	assert.Equal(t, 5, f.Skills[0].Level)
}

func TestExtractCandidate_EducationGraduation(t *testing.T) {
	t.Parallel()
	c := domain.Candidate{Educations: []domain.Education{
		{Institution: "MIT", Degree: "BSc", Field: "CS", EndDate: tp(2019, 6, 1)},
		{Institution: "MIT", Degree: "MSc", Field: "CS"},
	}}
	f := extractCandidateAt(c, domain.Application{}, testNow)
	require.Len(t, f.Educations, 2)
	assert.Equal(t, "2019", f.Educations[0].Graduation)
	assert.Equal(t, "in progress", f.Educations[1].Graduation)
}

func TestExtractJob_TruncationAndNormalization(t *testing.T) {
	t.Parallel()
	j := domain.Job{
		ID:               "job-1",
		Title:            "  Backend Engineer ",
		Description:      strings.Repeat("x", 2000),
		Requirements:     strings.Repeat("y", 2000),
		Responsibilities: strings.Repeat("z", 2000),
		ExperienceLevel:  " Senior ",
		Skills: []domain.JobSkill{
			{SkillID: "s-1", Name: "Go", Required: true, Level: 4},
			{SkillID: "", Name: "ghost"},
		},
	}
	f := ExtractJob(j)
	assert.Equal(t, "Backend Engineer", f.Title)
	assert.Len(t, []rune(f.Description), MaxJobTextLen)
	assert.Len(t, []rune(f.Requirements), MaxJobTextLen)
	assert.Len(t, []rune(f.Responsibilities), MaxJobTextLen)
	assert.Equal(t, "senior", f.ExperienceLevel)
	assert.Len(t, f.Skills, 1)
}
