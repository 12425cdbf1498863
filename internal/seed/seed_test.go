package seed

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobwave/matchengine/internal/domain"
)

const fixtureYAML = `
jobs:
  - id: job-1
    title: Backend Engineer
    location: Berlin
    experience_level: middle
    salary_min: 50000
    salary_max: 80000
    skills:
      - skill_id: python
        name: Python
        required: true
        level: 3
candidates:
  - id: cand-1
    first_name: Alice
    last_name: Strong
    location: Berlin
    skills:
      - skill_id: python
        name: Python
        level: 4
    experiences:
      - company: Acme
        position: Engineer
        start_date: "2021-03-01"
        description: built services
    educations:
      - institution: TU Berlin
        degree: BSc
        field: CS
        end_date: "2019-07-01"
applications:
  - id: app-1
    job_id: job-1
    candidate_id: cand-1
    expected_salary: 60000
`

type execPool struct {
	mu   sync.Mutex
	sqls []string
}

func (p *execPool) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sqls = append(p.sqls, sql)
	return pgconn.CommandTag{}, nil
}

func (p *execPool) QueryRow(context.Context, string, ...any) pgx.Row      { return nil }
func (p *execPool) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }

func TestParse_Valid(t *testing.T) {
	t.Parallel()
	f, err := Parse([]byte(fixtureYAML))
	require.NoError(t, err)
	require.Len(t, f.Jobs, 1)
	require.Len(t, f.Candidates, 1)
	require.Len(t, f.Applications, 1)
	require.NotNil(t, f.Jobs[0].SalaryMin)
	assert.Equal(t, int64(50000), *f.Jobs[0].SalaryMin)
	assert.Equal(t, "python", f.Candidates[0].Skills[0].SkillID)
}

func TestParse_DanglingApplication(t *testing.T) {
	t.Parallel()
	bad := `
jobs:
  - id: job-1
    title: X
candidates:
  - id: cand-1
applications:
  - id: app-1
    job_id: job-1
    candidate_id: ghost
`
	_, err := Parse([]byte(bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestApply_InsertsEverything(t *testing.T) {
	t.Parallel()
	f, err := Parse([]byte(fixtureYAML))
	require.NoError(t, err)

	pool := &execPool{}
	require.NoError(t, Apply(context.Background(), pool, f))

	var jobs, skills, cands, apps int
	for _, q := range pool.sqls {
		switch {
		case strings.Contains(q, "INSERT INTO jobs "):
			jobs++
		case strings.Contains(q, "INSERT INTO job_skills"):
			skills++
		case strings.Contains(q, "INSERT INTO candidates "):
			cands++
		case strings.Contains(q, "INSERT INTO applications"):
			apps++
		}
	}
	assert.Equal(t, 1, jobs)
	assert.Equal(t, 1, skills)
	assert.Equal(t, 1, cands)
	assert.Equal(t, 1, apps)
}

func TestApply_BadDateRejected(t *testing.T) {
	t.Parallel()
	f := Fixtures{Candidates: []CandidateFixture{{
		ID:          "cand-1",
		Experiences: []ExperienceFixture{{Company: "X", StartDate: "March 2021"}},
	}}}
	err := Apply(context.Background(), &execPool{}, f)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
