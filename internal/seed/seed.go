// Package seed loads YAML fixtures of jobs, candidates and applications
// into the database. Meant for local development and demo environments.
package seed

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/jobwave/matchengine/internal/adapter/repo/postgres"
	"github.com/jobwave/matchengine/internal/domain"
)

const dateLayout = "2006-01-02"

// Fixtures is the root of a seed file.
type Fixtures struct {
	Jobs         []JobFixture         `yaml:"jobs"`
	Candidates   []CandidateFixture   `yaml:"candidates"`
	Applications []ApplicationFixture `yaml:"applications"`
}

// JobFixture mirrors a job posting row plus its skills.
type JobFixture struct {
	ID               string         `yaml:"id"`
	Title            string         `yaml:"title"`
	Description      string         `yaml:"description"`
	Requirements     string         `yaml:"requirements"`
	Responsibilities string         `yaml:"responsibilities"`
	Location         string         `yaml:"location"`
	EmploymentType   string         `yaml:"employment_type"`
	ExperienceLevel  string         `yaml:"experience_level"`
	SalaryMin        *int64         `yaml:"salary_min"`
	SalaryMax        *int64         `yaml:"salary_max"`
	Skills           []SkillFixture `yaml:"skills"`
}

// SkillFixture is shared by jobs and candidates; Required only applies to
// job skills.
type SkillFixture struct {
	SkillID  string `yaml:"skill_id"`
	Name     string `yaml:"name"`
	Required bool   `yaml:"required"`
	Level    int    `yaml:"level"`
}

// CandidateFixture mirrors a candidate profile with its child rows.
type CandidateFixture struct {
	ID            string              `yaml:"id"`
	FirstName     string              `yaml:"first_name"`
	LastName      string              `yaml:"last_name"`
	Location      string              `yaml:"location"`
	Bio           string              `yaml:"bio"`
	ResumeSummary string              `yaml:"resume_summary"`
	Skills        []SkillFixture      `yaml:"skills"`
	Experiences   []ExperienceFixture `yaml:"experiences"`
	Educations    []EducationFixture  `yaml:"educations"`
}

// ExperienceFixture uses date-only strings; an empty end date means the
// position is current.
type ExperienceFixture struct {
	Company     string `yaml:"company"`
	Position    string `yaml:"position"`
	StartDate   string `yaml:"start_date"`
	EndDate     string `yaml:"end_date"`
	Description string `yaml:"description"`
}

// EducationFixture uses a date-only end date; empty means in progress.
type EducationFixture struct {
	Institution string `yaml:"institution"`
	Degree      string `yaml:"degree"`
	Field       string `yaml:"field"`
	EndDate     string `yaml:"end_date"`
}

// ApplicationFixture ties a candidate fixture to a job fixture.
type ApplicationFixture struct {
	ID             string `yaml:"id"`
	JobID          string `yaml:"job_id"`
	CandidateID    string `yaml:"candidate_id"`
	CoverLetter    string `yaml:"cover_letter"`
	ExpectedSalary *int64 `yaml:"expected_salary"`
}

// LoadFile reads and validates a fixture file.
func LoadFile(path string) (Fixtures, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("op=seed.read: %w", err)
	}
	return Parse(b)
}

// Parse decodes fixture YAML and checks referential integrity.
func Parse(b []byte) (Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Fixtures{}, fmt.Errorf("op=seed.parse: %w", err)
	}
	jobs := map[string]bool{}
	for _, j := range f.Jobs {
		if j.ID == "" || j.Title == "" {
			return Fixtures{}, fmt.Errorf("%w: job needs id and title", domain.ErrInvalidArgument)
		}
		jobs[j.ID] = true
	}
	cands := map[string]bool{}
	for _, c := range f.Candidates {
		if c.ID == "" {
			return Fixtures{}, fmt.Errorf("%w: candidate needs id", domain.ErrInvalidArgument)
		}
		cands[c.ID] = true
	}
	for _, a := range f.Applications {
		if !jobs[a.JobID] {
			return Fixtures{}, fmt.Errorf("%w: application %s references unknown job %s", domain.ErrInvalidArgument, a.ID, a.JobID)
		}
		if !cands[a.CandidateID] {
			return Fixtures{}, fmt.Errorf("%w: application %s references unknown candidate %s", domain.ErrInvalidArgument, a.ID, a.CandidateID)
		}
	}
	return f, nil
}

// Apply inserts the fixtures. Jobs and candidates go in concurrently,
// applications last since they reference both.
func Apply(ctx domain.Context, pool postgres.PgxPool, f Fixtures) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, j := range f.Jobs {
		g.Go(func() error { return insertJob(gctx, pool, j) })
	}
	for _, c := range f.Candidates {
		g.Go(func() error { return insertCandidate(gctx, pool, c) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, a := range f.Applications {
		if err := insertApplication(ctx, pool, a); err != nil {
			return err
		}
	}
	return nil
}

func insertJob(ctx domain.Context, pool postgres.PgxPool, j JobFixture) error {
	q := `INSERT INTO jobs (id, title, description, requirements, responsibilities, location, employment_type, experience_level, salary_min, salary_max, created_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11) ON CONFLICT (id) DO NOTHING`
	if _, err := pool.Exec(ctx, q, j.ID, j.Title, j.Description, j.Requirements, j.Responsibilities,
		j.Location, j.EmploymentType, j.ExperienceLevel, j.SalaryMin, j.SalaryMax, time.Now().UTC()); err != nil {
		return fmt.Errorf("op=seed.job %s: %w", j.ID, err)
	}
	for _, s := range j.Skills {
		q := `INSERT INTO job_skills (job_id, skill_id, name, required, level) VALUES ($1,$2,$3,$4,$5) ON CONFLICT DO NOTHING`
		if _, err := pool.Exec(ctx, q, j.ID, s.SkillID, s.Name, s.Required, s.Level); err != nil {
			return fmt.Errorf("op=seed.job_skill %s/%s: %w", j.ID, s.SkillID, err)
		}
	}
	return nil
}

func insertCandidate(ctx domain.Context, pool postgres.PgxPool, c CandidateFixture) error {
	q := `INSERT INTO candidates (id, first_name, last_name, location, bio, resume_summary)
	VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT (id) DO NOTHING`
	if _, err := pool.Exec(ctx, q, c.ID, c.FirstName, c.LastName, c.Location, c.Bio, c.ResumeSummary); err != nil {
		return fmt.Errorf("op=seed.candidate %s: %w", c.ID, err)
	}
	for _, s := range c.Skills {
		q := `INSERT INTO candidate_skills (candidate_id, skill_id, name, level) VALUES ($1,$2,$3,$4) ON CONFLICT DO NOTHING`
		if _, err := pool.Exec(ctx, q, c.ID, s.SkillID, s.Name, s.Level); err != nil {
			return fmt.Errorf("op=seed.candidate_skill %s/%s: %w", c.ID, s.SkillID, err)
		}
	}
	for _, e := range c.Experiences {
		start, err := time.Parse(dateLayout, e.StartDate)
		if err != nil {
			return fmt.Errorf("%w: experience start date %q", domain.ErrInvalidArgument, e.StartDate)
		}
		end, err := optionalDate(e.EndDate)
		if err != nil {
			return fmt.Errorf("%w: experience end date %q", domain.ErrInvalidArgument, e.EndDate)
		}
		q := `INSERT INTO experiences (candidate_id, company, position, start_date, end_date, description) VALUES ($1,$2,$3,$4,$5,$6)`
		if _, err := pool.Exec(ctx, q, c.ID, e.Company, e.Position, start, end, e.Description); err != nil {
			return fmt.Errorf("op=seed.experience %s: %w", c.ID, err)
		}
	}
	for _, ed := range c.Educations {
		end, err := optionalDate(ed.EndDate)
		if err != nil {
			return fmt.Errorf("%w: education end date %q", domain.ErrInvalidArgument, ed.EndDate)
		}
		q := `INSERT INTO educations (candidate_id, institution, degree, field, end_date) VALUES ($1,$2,$3,$4,$5)`
		if _, err := pool.Exec(ctx, q, c.ID, ed.Institution, ed.Degree, ed.Field, end); err != nil {
			return fmt.Errorf("op=seed.education %s: %w", c.ID, err)
		}
	}
	return nil
}

func insertApplication(ctx domain.Context, pool postgres.PgxPool, a ApplicationFixture) error {
	q := `INSERT INTO applications (id, job_id, candidate_id, cover_letter, expected_salary, created_at)
	VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT (id) DO NOTHING`
	if _, err := pool.Exec(ctx, q, a.ID, a.JobID, a.CandidateID, a.CoverLetter, a.ExpectedSalary, time.Now().UTC()); err != nil {
		return fmt.Errorf("op=seed.application %s: %w", a.ID, err)
	}
	return nil
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
