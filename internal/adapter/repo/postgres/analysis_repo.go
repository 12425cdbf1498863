package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/jobwave/matchengine/internal/domain"
)

// AnalysisRepo persists analysis runs and their finished reports. Reports
// are stored as a single JSONB document per run.
type AnalysisRepo struct{ Pool PgxPool }

// NewAnalysisRepo constructs an AnalysisRepo with the given pool.
func NewAnalysisRepo(p PgxPool) *AnalysisRepo { return &AnalysisRepo{Pool: p} }

// CreateRun inserts a new run and returns its id.
func (r *AnalysisRepo) CreateRun(ctx domain.Context, run domain.AnalysisRun) (string, error) {
	tracer := otel.Tracer("repo.analysis")
	ctx, span := tracer.Start(ctx, "analysis.CreateRun")
	defer span.End()

	id := run.ID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	q := `INSERT INTO analysis_runs (id, job_id, status, error, top_limit, created_at, updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.Pool.Exec(ctx, q, id, run.JobID, run.Status, run.Error, run.TopLimit, now, now)
	if err != nil {
		return "", fmt.Errorf("op=analysis.create_run: %w", err)
	}
	return id, nil
}

// GetRun loads a run by id.
func (r *AnalysisRepo) GetRun(ctx domain.Context, id string) (domain.AnalysisRun, error) {
	tracer := otel.Tracer("repo.analysis")
	ctx, span := tracer.Start(ctx, "analysis.GetRun")
	defer span.End()

	q := `SELECT id, job_id, status, COALESCE(error,''), top_limit, created_at, updated_at FROM analysis_runs WHERE id=$1`
	row := r.Pool.QueryRow(ctx, q, id)
	var run domain.AnalysisRun
	if err := row.Scan(&run.ID, &run.JobID, &run.Status, &run.Error, &run.TopLimit, &run.CreatedAt, &run.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AnalysisRun{}, fmt.Errorf("op=analysis.get_run: %w", domain.ErrNotFound)
		}
		return domain.AnalysisRun{}, fmt.Errorf("op=analysis.get_run: %w", err)
	}
	return run, nil
}

// UpdateStatus moves a run through its lifecycle, with an optional error
// message on failure.
func (r *AnalysisRepo) UpdateStatus(ctx domain.Context, id string, status domain.AnalysisStatus, errMsg *string) error {
	tracer := otel.Tracer("repo.analysis")
	ctx, span := tracer.Start(ctx, "analysis.UpdateStatus")
	defer span.End()

	errVal := ""
	if errMsg != nil {
		errVal = *errMsg
	}
	q := `UPDATE analysis_runs SET status=$2, error=$3, updated_at=$4 WHERE id=$1`
	if _, err := r.Pool.Exec(ctx, q, id, status, errVal, time.Now().UTC()); err != nil {
		return fmt.Errorf("op=analysis.update_status: %w", err)
	}
	return nil
}

// SaveReport upserts the finished report for a run.
func (r *AnalysisRepo) SaveReport(ctx domain.Context, runID string, rep domain.JobAnalysisReport) error {
	tracer := otel.Tracer("repo.analysis")
	ctx, span := tracer.Start(ctx, "analysis.SaveReport")
	defer span.End()

	doc, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("op=analysis.save_report: %w", err)
	}
	q := `INSERT INTO analysis_reports (run_id, report, created_at) VALUES ($1,$2,$3)
	ON CONFLICT (run_id) DO UPDATE SET report=EXCLUDED.report`
	if _, err := r.Pool.Exec(ctx, q, runID, doc, time.Now().UTC()); err != nil {
		return fmt.Errorf("op=analysis.save_report: %w", err)
	}
	return nil
}

// GetReport loads the finished report for a run.
func (r *AnalysisRepo) GetReport(ctx domain.Context, runID string) (domain.JobAnalysisReport, error) {
	tracer := otel.Tracer("repo.analysis")
	ctx, span := tracer.Start(ctx, "analysis.GetReport")
	defer span.End()

	q := `SELECT report FROM analysis_reports WHERE run_id=$1`
	row := r.Pool.QueryRow(ctx, q, runID)
	var doc []byte
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.JobAnalysisReport{}, fmt.Errorf("op=analysis.get_report: %w", domain.ErrNotFound)
		}
		return domain.JobAnalysisReport{}, fmt.Errorf("op=analysis.get_report: %w", err)
	}
	var rep domain.JobAnalysisReport
	if err := json.Unmarshal(doc, &rep); err != nil {
		return domain.JobAnalysisReport{}, fmt.Errorf("op=analysis.get_report: %w", err)
	}
	return rep, nil
}
