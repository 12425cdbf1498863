package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobwave/matchengine/internal/adapter/repo/postgres"
	"github.com/jobwave/matchengine/internal/domain"
)

func TestJobRepo_Get(t *testing.T) {
	t.Parallel()
	salMin, salMax := int64(50000), int64(80000)
	created := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	pool := &poolStub{
		rowVals: [][]any{{
			"job-1", "Backend Engineer", "desc", "reqs", "resp",
			"Berlin", "full_time", "middle",
			&salMin, &salMax, created,
		}},
		queryRows: []pgx.Rows{&rowsStub{vals: [][]any{
			{"python", "Python", true, 3},
			{"sql", "SQL", false, 2},
		}}},
	}
	repo := postgres.NewJobRepo(pool)

	j, err := repo.Get(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", j.Title)
	assert.Equal(t, "middle", j.ExperienceLevel)
	require.NotNil(t, j.SalaryMin)
	assert.Equal(t, int64(50000), *j.SalaryMin)
	require.Len(t, j.Skills, 2)
	assert.Equal(t, domain.JobSkill{SkillID: "python", Name: "Python", Required: true, Level: 3}, j.Skills[0])
}

func TestJobRepo_Get_NotFound(t *testing.T) {
	t.Parallel()
	pool := &poolStub{rowErr: pgx.ErrNoRows}
	repo := postgres.NewJobRepo(pool)

	_, err := repo.Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "op=job.get")
}
