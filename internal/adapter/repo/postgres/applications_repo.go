package postgres

import (
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/jobwave/matchengine/internal/domain"
)

// ApplicationRepo loads a job's applicant pool with candidates fully
// hydrated. Hydration is bulk: one query per child table for the whole
// pool, never one per candidate.
type ApplicationRepo struct{ Pool PgxPool }

// NewApplicationRepo constructs an ApplicationRepo with the given pool.
func NewApplicationRepo(p PgxPool) *ApplicationRepo { return &ApplicationRepo{Pool: p} }

// ListByJob returns every application for the job, ordered by submission
// time so batch input order is stable across runs.
func (r *ApplicationRepo) ListByJob(ctx domain.Context, jobID string) ([]domain.Application, error) {
	tracer := otel.Tracer("repo.applications")
	ctx, span := tracer.Start(ctx, "applications.ListByJob")
	defer span.End()

	q := `SELECT a.id, a.job_id, a.candidate_id, COALESCE(a.cover_letter,''), a.expected_salary, a.created_at,
		c.id, COALESCE(c.first_name,''), COALESCE(c.last_name,''), COALESCE(c.location,''),
		COALESCE(c.bio,''), COALESCE(c.resume_summary,'')
	FROM applications a
	JOIN candidates c ON c.id = a.candidate_id
	WHERE a.job_id=$1
	ORDER BY a.created_at, a.id`
	rows, err := r.Pool.Query(ctx, q, jobID)
	if err != nil {
		return nil, fmt.Errorf("op=applications.list: %w", err)
	}
	defer rows.Close()

	var apps []domain.Application
	var candidateIDs []string
	seen := map[string]bool{}
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.CoverLetter, &a.ExpectedSalary, &a.CreatedAt,
			&a.Candidate.ID, &a.Candidate.FirstName, &a.Candidate.LastName, &a.Candidate.Location,
			&a.Candidate.Bio, &a.Candidate.ResumeSummary); err != nil {
			return nil, fmt.Errorf("op=applications.list: %w", err)
		}
		apps = append(apps, a)
		if !seen[a.CandidateID] {
			seen[a.CandidateID] = true
			candidateIDs = append(candidateIDs, a.CandidateID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=applications.list: %w", err)
	}
	if len(apps) == 0 {
		return apps, nil
	}

	skills, err := r.candidateSkills(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	exps, err := r.candidateExperiences(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	edus, err := r.candidateEducations(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		id := apps[i].CandidateID
		apps[i].Candidate.Skills = skills[id]
		apps[i].Candidate.Experiences = exps[id]
		apps[i].Candidate.Educations = edus[id]
	}
	return apps, nil
}

func (r *ApplicationRepo) candidateSkills(ctx domain.Context, ids []string) (map[string][]domain.CandidateSkill, error) {
	q := `SELECT candidate_id, skill_id, COALESCE(name,''), level FROM candidate_skills WHERE candidate_id = ANY($1) ORDER BY candidate_id, skill_id`
	rows, err := r.Pool.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("op=applications.skills: %w", err)
	}
	defer rows.Close()

	out := map[string][]domain.CandidateSkill{}
	for rows.Next() {
		var cid string
		var s domain.CandidateSkill
		if err := rows.Scan(&cid, &s.SkillID, &s.Name, &s.Level); err != nil {
			return nil, fmt.Errorf("op=applications.skills: %w", err)
		}
		out[cid] = append(out[cid], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=applications.skills: %w", err)
	}
	return out, nil
}

func (r *ApplicationRepo) candidateExperiences(ctx domain.Context, ids []string) (map[string][]domain.Experience, error) {
	q := `SELECT candidate_id, COALESCE(company,''), COALESCE(position,''), start_date, end_date, COALESCE(description,'')
	FROM experiences WHERE candidate_id = ANY($1) ORDER BY candidate_id, start_date`
	rows, err := r.Pool.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("op=applications.experiences: %w", err)
	}
	defer rows.Close()

	out := map[string][]domain.Experience{}
	for rows.Next() {
		var cid string
		var e domain.Experience
		if err := rows.Scan(&cid, &e.Company, &e.Position, &e.StartDate, &e.EndDate, &e.Description); err != nil {
			return nil, fmt.Errorf("op=applications.experiences: %w", err)
		}
		out[cid] = append(out[cid], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=applications.experiences: %w", err)
	}
	return out, nil
}

func (r *ApplicationRepo) candidateEducations(ctx domain.Context, ids []string) (map[string][]domain.Education, error) {
	q := `SELECT candidate_id, COALESCE(institution,''), COALESCE(degree,''), COALESCE(field,''), end_date
	FROM educations WHERE candidate_id = ANY($1) ORDER BY candidate_id, end_date NULLS LAST`
	rows, err := r.Pool.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("op=applications.educations: %w", err)
	}
	defer rows.Close()

	out := map[string][]domain.Education{}
	for rows.Next() {
		var cid string
		var e domain.Education
		if err := rows.Scan(&cid, &e.Institution, &e.Degree, &e.Field, &e.EndDate); err != nil {
			return nil, fmt.Errorf("op=applications.educations: %w", err)
		}
		out[cid] = append(out[cid], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=applications.educations: %w", err)
	}
	return out, nil
}
