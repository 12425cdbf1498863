// Package domain holds the core entities and ports of the matching engine.
package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrSchemaInvalid   = errors.New("schema invalid")
	ErrInternal        = errors.New("internal error")
)

// Context is an alias so the domain does not spell out std context everywhere.
// Adapters and usecases pass context.Context through unchanged.
type Context = context.Context

// ExperienceLevel values accepted on a job posting. Candidate levels are
// derived from cumulative years of experience, see match.LevelFromYears.
const (
	LevelEntry  = "entry"
	LevelJunior = "junior"
	LevelMiddle = "middle"
	LevelSenior = "senior"
	LevelLead   = "lead"
	LevelExpert = "expert"
)

// JobSkill is one skill requirement on a job posting. Identity is the stable
// skill id, never the display name.
type JobSkill struct {
	SkillID  string
	Name     string
	Required bool
	Level    int
}

// Job is a job posting as read from the persistence layer.
type Job struct {
	ID               string
	Title            string
	Description      string
	Requirements     string
	Responsibilities string
	Location         string
	EmploymentType   string
	ExperienceLevel  string
	SalaryMin        *int64
	SalaryMax        *int64
	Skills           []JobSkill
	CreatedAt        time.Time
}

// CandidateSkill is a skill on a candidate profile with proficiency 1-5.
type CandidateSkill struct {
	SkillID string
	Name    string
	Level   int
}

// Experience is one work-history entry on a candidate profile.
type Experience struct {
	Company     string
	Position    string
	StartDate   time.Time
	EndDate     *time.Time
	Description string
}

// Education is one education entry on a candidate profile. A nil EndDate
// means the degree is still in progress.
type Education struct {
	Institution string
	Degree      string
	Field       string
	EndDate     *time.Time
}

// Candidate is a candidate profile as read from the persistence layer.
type Candidate struct {
	ID            string
	FirstName     string
	LastName      string
	Location      string
	Bio           string
	Skills        []CandidateSkill
	Experiences   []Experience
	Educations    []Education
	ResumeSummary string
}

// Application ties a candidate to a job, carrying per-application fields.
// The Candidate is hydrated by the repository when listing a job's pool.
type Application struct {
	ID             string
	JobID          string
	CandidateID    string
	CoverLetter    string
	ExpectedSalary *int64
	Candidate      Candidate
	CreatedAt      time.Time
}

// AnalysisStatus is the lifecycle of one analysis run.
type AnalysisStatus string

// Analysis run states.
const (
	AnalysisQueued     AnalysisStatus = "queued"
	AnalysisProcessing AnalysisStatus = "processing"
	AnalysisCompleted  AnalysisStatus = "completed"
	AnalysisFailed     AnalysisStatus = "failed"
)

// AnalysisRun tracks one asynchronous analysis of a job's applicant pool.
type AnalysisRun struct {
	ID        string
	JobID     string
	Status    AnalysisStatus
	Error     string
	TopLimit  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AnalyzeTaskPayload is the queue message that triggers a batch analysis.
type AnalyzeTaskPayload struct {
	RunID    string `json:"run_id"`
	JobID    string `json:"job_id"`
	TopLimit int    `json:"top_limit"`
}

// Repositories (ports)

// JobRepository loads job postings.
type JobRepository interface {
	Get(ctx Context, id string) (Job, error)
}

// ApplicationRepository loads a job's applicant pool with candidates hydrated.
type ApplicationRepository interface {
	ListByJob(ctx Context, jobID string) ([]Application, error)
}

// AnalysisRepository persists analysis runs and their reports.
type AnalysisRepository interface {
	CreateRun(ctx Context, run AnalysisRun) (string, error)
	GetRun(ctx Context, id string) (AnalysisRun, error)
	UpdateStatus(ctx Context, id string, status AnalysisStatus, errMsg *string) error
	SaveReport(ctx Context, runID string, rep JobAnalysisReport) error
	GetReport(ctx Context, runID string) (JobAnalysisReport, error)
}

// Queue (port)

// Queue enqueues analysis tasks for asynchronous processing.
type Queue interface {
	EnqueueAnalyze(ctx Context, payload AnalyzeTaskPayload) (string, error)
}

// AIClient (port)

// AIClient is the single synchronous boundary to the external inference
// service. Transport, retries and connection management live behind it.
type AIClient interface {
	// ChatJSON returns the raw model output for the given prompts. The
	// output is expected, not guaranteed, to be JSON; callers own parsing
	// and fallback behavior.
	ChatJSON(ctx Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

// ReportCache (port)

// ReportCache holds completed reports for cheap re-reads.
type ReportCache interface {
	Put(ctx Context, runID string, rep JobAnalysisReport, ttl time.Duration) error
	// Get returns ok=false when the report is not cached.
	Get(ctx Context, runID string) (JobAnalysisReport, bool, error)
}
