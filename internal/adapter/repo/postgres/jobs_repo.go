package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/jobwave/matchengine/internal/domain"
)

// JobRepo loads job postings with their skill requirements.
type JobRepo struct{ Pool PgxPool }

// NewJobRepo constructs a JobRepo with the given pool.
func NewJobRepo(p PgxPool) *JobRepo { return &JobRepo{Pool: p} }

// Get loads a job posting by id, skills included.
func (r *JobRepo) Get(ctx domain.Context, id string) (domain.Job, error) {
	tracer := otel.Tracer("repo.jobs")
	ctx, span := tracer.Start(ctx, "jobs.Get")
	defer span.End()

	q := `SELECT id, title, COALESCE(description,''), COALESCE(requirements,''), COALESCE(responsibilities,''),
		COALESCE(location,''), COALESCE(employment_type,''), COALESCE(experience_level,''),
		salary_min, salary_max, created_at
	FROM jobs WHERE id=$1`
	var j domain.Job
	row := r.Pool.QueryRow(ctx, q, id)
	if err := row.Scan(&j.ID, &j.Title, &j.Description, &j.Requirements, &j.Responsibilities,
		&j.Location, &j.EmploymentType, &j.ExperienceLevel,
		&j.SalaryMin, &j.SalaryMax, &j.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Job{}, fmt.Errorf("op=job.get: %w", domain.ErrNotFound)
		}
		return domain.Job{}, fmt.Errorf("op=job.get: %w", err)
	}

	skills, err := r.skills(ctx, id)
	if err != nil {
		return domain.Job{}, err
	}
	j.Skills = skills
	return j, nil
}

func (r *JobRepo) skills(ctx domain.Context, jobID string) ([]domain.JobSkill, error) {
	q := `SELECT skill_id, COALESCE(name,''), required, level FROM job_skills WHERE job_id=$1 ORDER BY skill_id`
	rows, err := r.Pool.Query(ctx, q, jobID)
	if err != nil {
		return nil, fmt.Errorf("op=job.skills: %w", err)
	}
	defer rows.Close()

	var out []domain.JobSkill
	for rows.Next() {
		var s domain.JobSkill
		if err := rows.Scan(&s.SkillID, &s.Name, &s.Required, &s.Level); err != nil {
			return nil, fmt.Errorf("op=job.skills: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=job.skills: %w", err)
	}
	return out, nil
}
