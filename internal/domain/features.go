package domain

// Derived, ephemeral feature representations. They are recomputed per
// pipeline run and never persisted. Every free-text field is length-capped
// by the extractor before it leaves that package, so downstream consumers
// (scorer, prompt builder) never see unbounded text.

// SkillFeature is a candidate skill in extracted form.
type SkillFeature struct {
	SkillID string
	Name    string
	Level   int
}

// ExperienceFeature is a work-history entry with the duration already
// rendered as whole years plus remaining months.
type ExperienceFeature struct {
	Company     string
	Position    string
	Duration    string
	Description string
}

// EducationFeature is an education entry with graduation rendered as a year
// or "in progress".
type EducationFeature struct {
	Institution string
	Degree      string
	Field       string
	Graduation  string
}

// CandidateFeatures is the compact candidate representation consumed by the
// scorer and the prompt builder.
type CandidateFeatures struct {
	CandidateID    string
	ApplicationID  string
	Name           string
	Location       string
	Bio            string
	Skills         []SkillFeature
	Experiences    []ExperienceFeature
	Educations     []EducationFeature
	TotalYears     float64
	ExpectedSalary *int64
	ResumeSummary  string
	CoverLetter    string
	// NegativeDurations counts experience entries whose end date preceded
	// the start date; they are clamped to zero and surfaced here for
	// diagnostics only.
	NegativeDurations int
}

// JobSkillFeature is a job skill requirement in extracted form.
type JobSkillFeature struct {
	SkillID  string
	Name     string
	Required bool
	Level    int
}

// JobFeatures is the compact job representation consumed by the scorer and
// the prompt builder.
type JobFeatures struct {
	JobID            string
	Title            string
	Description      string
	Requirements     string
	Responsibilities string
	Location         string
	EmploymentType   string
	ExperienceLevel  string
	SalaryMin        *int64
	SalaryMax        *int64
	Skills           []JobSkillFeature
}

// MatchScore is the deterministic multi-factor score for one candidate/job
// pair. Immutable once computed.
type MatchScore struct {
	Skill      int `json:"skill"`
	Experience int `json:"experience"`
	Location   int `json:"location"`
	Salary     int `json:"salary"`
	Composite  int `json:"composite"`
}
