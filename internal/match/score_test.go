package match_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobwave/matchengine/internal/domain"
	"github.com/jobwave/matchengine/internal/match"
)

func i64(v int64) *int64 { return &v }

func candWith(skills []string, years float64) domain.CandidateFeatures {
	c := domain.CandidateFeatures{TotalYears: years}
	for _, id := range skills {
		c.Skills = append(c.Skills, domain.SkillFeature{SkillID: id, Name: id, Level: 3})
	}
	return c
}

func jobWith(skills []string, level string) domain.JobFeatures {
	j := domain.JobFeatures{ExperienceLevel: level}
	for _, id := range skills {
		j.Skills = append(j.Skills, domain.JobSkillFeature{SkillID: id, Name: id, Required: true, Level: 3})
	}
	return j
}

func TestScore_NoRequiredSkills_FullSkillMatch(t *testing.T) {
	t.Parallel()
	s := match.Score(candWith(nil, 2), jobWith(nil, domain.LevelJunior))
	assert.Equal(t, 100, s.Skill)
}

func TestScore_SkillIntersection(t *testing.T) {
	t.Parallel()
	c := candWith([]string{"python", "sql", "ml"}, 4)
	j := jobWith([]string{"python", "sql"}, domain.LevelMiddle)
	s := match.Score(c, j)
	assert.Equal(t, 100, s.Skill)

	j = jobWith([]string{"python", "sql", "go", "k8s"}, domain.LevelMiddle)
	s = match.Score(c, j)
	assert.Equal(t, 50, s.Skill)
}

func TestScore_SkillIdentityIsByID_NotName(t *testing.T) {
	t.Parallel()
	c := domain.CandidateFeatures{Skills: []domain.SkillFeature{{SkillID: "s-1", Name: "Python"}}}
	j := domain.JobFeatures{Skills: []domain.JobSkillFeature{{SkillID: "s-2", Name: "Python"}}}
	s := match.Score(c, j)
	assert.Equal(t, 0, s.Skill)
}

func TestScore_ExperienceLadder(t *testing.T) {
	t.Parallel()
	cases := []struct {
		years float64
		level string
		want  int
	}{
		{0.5, domain.LevelEntry, 100},
		{2, domain.LevelJunior, 100},
		{4, domain.LevelMiddle, 100},
		{6, domain.LevelSenior, 100},
		{10, domain.LevelLead, 100},
		{15, domain.LevelExpert, 100},
		{0.5, domain.LevelJunior, 80},  // one level apart
		{0.5, domain.LevelMiddle, 60},  // two levels
		{0.5, domain.LevelExpert, 0},   // five levels, floored
		{15, domain.LevelEntry, 0},
	}
	for _, tc := range cases {
		s := match.Score(candWith(nil, tc.years), jobWith(nil, tc.level))
		assert.Equal(t, tc.want, s.Experience, "years=%v level=%s", tc.years, tc.level)
	}
}

func TestScore_LocationCoarseMatching(t *testing.T) {
	t.Parallel()
	c := domain.CandidateFeatures{Location: "Berlin, Germany"}
	j := domain.JobFeatures{Location: "berlin"}
	assert.Equal(t, 100, match.Score(c, j).Location)

	j.Location = "Munich"
	assert.Equal(t, 0, match.Score(c, j).Location)

	c.Location = ""
	assert.Equal(t, 50, match.Score(c, j).Location)
}

func TestScore_SalaryRange(t *testing.T) {
	t.Parallel()
	j := domain.JobFeatures{SalaryMin: i64(50000), SalaryMax: i64(80000)}

	c := domain.CandidateFeatures{ExpectedSalary: i64(60000)}
	assert.Equal(t, 100, match.Score(c, j).Salary)

	// 10% above the upper bound: linear falloff
	c.ExpectedSalary = i64(88000)
	assert.Equal(t, 90, match.Score(c, j).Salary)

	// far above: floored at zero
	c.ExpectedSalary = i64(1000000)
	assert.Equal(t, 0, match.Score(c, j).Salary)

	// below the lower bound
	c.ExpectedSalary = i64(45000)
	assert.Equal(t, 90, match.Score(c, j).Salary)
}

func TestScore_NeutralDefaultsExactly50(t *testing.T) {
	t.Parallel()
	// Unknown location and no salary data on either side.
	c := candWith([]string{"python"}, 3)
	j := jobWith([]string{"python"}, domain.LevelMiddle)
	s := match.Score(c, j)
	assert.Equal(t, 50, s.Location)
	assert.Equal(t, 50, s.Salary)
}

func TestScore_CompositeWeights(t *testing.T) {
	t.Parallel()
	c := candWith([]string{"python", "sql"}, 4)
	c.Location = "Remote"
	c.ExpectedSalary = i64(60000)
	j := jobWith([]string{"python", "sql"}, domain.LevelMiddle)
	j.Location = "remote"
	j.SalaryMin, j.SalaryMax = i64(50000), i64(80000)
	s := match.Score(c, j)
	require.Equal(t, 100, s.Skill)
	require.Equal(t, 100, s.Experience)
	require.Equal(t, 100, s.Location)
	require.Equal(t, 100, s.Salary)
	assert.Equal(t, 100, s.Composite)

	// skill=0 pulls the composite down by its 40% weight
	j2 := jobWith([]string{"go"}, domain.LevelMiddle)
	j2.Location = "remote"
	j2.SalaryMin, j2.SalaryMax = i64(50000), i64(80000)
	s2 := match.Score(c, j2)
	assert.Equal(t, 0, s2.Skill)
	assert.Equal(t, 60, s2.Composite)
}

func TestScore_BoundsAndDeterminism_Randomized(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	skillPool := []string{"a", "b", "c", "d", "e", "f", "g"}
	levels := []string{"", domain.LevelEntry, domain.LevelJunior, domain.LevelMiddle, domain.LevelSenior, domain.LevelLead, domain.LevelExpert}
	locs := []string{"", "Berlin", "Remote", "New York, NY"}

	for i := 0; i < 500; i++ {
		c := candWith(pick(rng, skillPool), rng.Float64()*20)
		c.Location = locs[rng.Intn(len(locs))]
		if rng.Intn(2) == 0 {
			c.ExpectedSalary = i64(int64(rng.Intn(200000)))
		}
		j := jobWith(pick(rng, skillPool), levels[rng.Intn(len(levels))])
		j.Location = locs[rng.Intn(len(locs))]
		if rng.Intn(2) == 0 {
			j.SalaryMin = i64(int64(rng.Intn(100000)))
			j.SalaryMax = i64(*j.SalaryMin + int64(rng.Intn(100000)))
		}

		s := match.Score(c, j)
		for name, v := range map[string]int{"skill": s.Skill, "experience": s.Experience, "location": s.Location, "salary": s.Salary, "composite": s.Composite} {
			assert.GreaterOrEqual(t, v, 0, name)
			assert.LessOrEqual(t, v, 100, name)
		}
		// idempotence on immutable inputs
		assert.Equal(t, s, match.Score(c, j))
	}
}

func pick(rng *rand.Rand, pool []string) []string {
	n := rng.Intn(len(pool))
	out := make([]string, 0, n)
	for _, s := range pool[:n] {
		out = append(out, s)
	}
	return out
}
