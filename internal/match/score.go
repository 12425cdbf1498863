package match

import (
	"math"
	"strings"

	"github.com/jobwave/matchengine/internal/domain"
)

// Composite weights. Skill fit dominates, salary is a weak signal.
const (
	weightSkill      = 0.4
	weightExperience = 0.3
	weightLocation   = 0.2
	weightSalary     = 0.1
)

// neutralScore is returned for a sub-signal whose inputs are missing.
// Missing data degrades, it never throws.
const neutralScore = 50

// Score computes the deterministic four-factor match score for one
// candidate/job pair. Pure function: identical inputs always yield
// identical output.
func Score(c domain.CandidateFeatures, j domain.JobFeatures) domain.MatchScore {
	s := domain.MatchScore{
		Skill:      skillMatch(c, j),
		Experience: experienceMatch(c, j),
		Location:   locationMatch(c.Location, j.Location),
		Salary:     salaryMatch(c.ExpectedSalary, j.SalaryMin, j.SalaryMax),
	}
	s.Composite = int(math.Round(
		weightSkill*float64(s.Skill) +
			weightExperience*float64(s.Experience) +
			weightLocation*float64(s.Location) +
			weightSalary*float64(s.Salary)))
	return s
}

// skillMatch is the fraction of the job's skill set the candidate covers,
// matched by stable skill id, never by display name.
func skillMatch(c domain.CandidateFeatures, j domain.JobFeatures) int {
	if len(j.Skills) == 0 {
		return 100
	}
	have := make(map[string]struct{}, len(c.Skills))
	for _, s := range c.Skills {
		have[s.SkillID] = struct{}{}
	}
	matched := 0
	for _, s := range j.Skills {
		if _, ok := have[s.SkillID]; ok {
			matched++
		}
	}
	return int(math.Round(float64(matched) / float64(len(j.Skills)) * 100))
}

// Ordinal seniority ladder, ENTRY=1 .. EXPERT=6.
var levelOrdinals = map[string]int{
	domain.LevelEntry:  1,
	domain.LevelJunior: 2,
	domain.LevelMiddle: 3,
	domain.LevelSenior: 4,
	domain.LevelLead:   5,
	domain.LevelExpert: 6,
}

// LevelFromYears maps cumulative years of experience to the ordinal ladder.
func LevelFromYears(years float64) int {
	switch {
	case years < 1:
		return levelOrdinals[domain.LevelEntry]
	case years < 3:
		return levelOrdinals[domain.LevelJunior]
	case years < 5:
		return levelOrdinals[domain.LevelMiddle]
	case years < 8:
		return levelOrdinals[domain.LevelSenior]
	case years < 12:
		return levelOrdinals[domain.LevelLead]
	default:
		return levelOrdinals[domain.LevelExpert]
	}
}

// experienceMatch penalizes 20 points per level of distance between the
// job's declared seniority and the level derived from the candidate's
// cumulative years. A job with no declared level scores neutral.
func experienceMatch(c domain.CandidateFeatures, j domain.JobFeatures) int {
	jobLevel, ok := levelOrdinals[j.ExperienceLevel]
	if !ok {
		return neutralScore
	}
	candLevel := LevelFromYears(c.TotalYears)
	diff := jobLevel - candLevel
	if diff < 0 {
		diff = -diff
	}
	score := 100 - 20*diff
	if score < 0 {
		score = 0
	}
	return score
}

// locationMatch is intentionally coarse: a pre-filter signal, not a
// geocoding system. Unknown on either side is neutral; a case-insensitive
// substring match either way is a hit; anything else is a miss.
func locationMatch(candidate, job string) int {
	cand := strings.ToLower(strings.TrimSpace(candidate))
	loc := strings.ToLower(strings.TrimSpace(job))
	if cand == "" || loc == "" {
		return neutralScore
	}
	if strings.Contains(cand, loc) || strings.Contains(loc, cand) {
		return 100
	}
	return 0
}

// salaryMatch scores the candidate's expectation against the job's range:
// neutral when anything is missing, full when inside the range, otherwise a
// linear falloff proportional to the distance from the nearest bound,
// floored at zero.
func salaryMatch(expected, min, max *int64) int {
	if expected == nil || min == nil || max == nil {
		return neutralScore
	}
	e, lo, hi := *expected, *min, *max
	if e >= lo && e <= hi {
		return 100
	}
	var dist, bound int64
	if e < lo {
		dist, bound = lo-e, lo
	} else {
		dist, bound = e-hi, hi
	}
	if bound <= 0 {
		return 0
	}
	score := int(math.Round(100 * (1 - float64(dist)/float64(bound))))
	if score < 0 {
		score = 0
	}
	return score
}
