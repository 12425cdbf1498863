package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jobwave/matchengine/internal/config"
	"github.com/jobwave/matchengine/internal/domain"
	"github.com/jobwave/matchengine/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg        config.Config
	Analyze    usecase.AnalyzeService
	Reports    usecase.ReportService
	DBCheck    func(ctx context.Context) error
	RedisCheck func(ctx context.Context) error
	KafkaCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, analyze usecase.AnalyzeService, reports usecase.ReportService, dbCheck, redisCheck, kafkaCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Analyze: analyze, Reports: reports, DBCheck: dbCheck, RedisCheck: redisCheck, KafkaCheck: kafkaCheck}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

type analyzeRequest struct {
	TopLimit int `json:"top_limit" validate:"omitempty,gte=1,lte=100"`
}

type analyzeResponse struct {
	RunID  string `json:"run_id"`
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// AnalyzeHandler accepts an analysis request for a job and answers 202 with
// the run id. The body is optional; an empty body means default settings.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "id")

		var req analyzeRequest
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 4096))
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				writeError(w, r, fmt.Errorf("%w: malformed json body", domain.ErrInvalidArgument), nil)
				return
			}
			if err := getValidator().Struct(req); err != nil {
				writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), map[string]string{"field": "top_limit"})
				return
			}
		}

		runID, err := s.Analyze.Request(r.Context(), jobID, req.TopLimit)
		if err != nil {
			LoggerFrom(r).Warn("analysis request rejected",
				slog.String("job_id", jobID), slog.Any("error", err))
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusAccepted, analyzeResponse{RunID: runID, JobID: jobID, Status: string(domain.AnalysisQueued)})
	}
}

type runStatusResponse struct {
	ID     string `json:"id"`
	JobID  string `json:"job_id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RunStatusHandler reports the lifecycle state of one analysis run.
func (s *Server) RunStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runID := chi.URLParam(r, "id")
		run, err := s.Reports.Status(r.Context(), runID)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, runStatusResponse{
			ID:     run.ID,
			JobID:  run.JobID,
			Status: string(run.Status),
			Error:  run.Error,
		})
	}
}

// ReportHandler returns the finished report for a completed run. A run that
// is not completed yet answers 409 with the run status in the error details.
func (s *Server) ReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runID := chi.URLParam(r, "id")
		rep, err := s.Reports.Report(r.Context(), runID)
		if err != nil {
			var details any
			if errors.Is(err, domain.ErrConflict) {
				if run, serr := s.Reports.Status(r.Context(), runID); serr == nil {
					details = map[string]string{"status": string(run.Status)}
				}
			}
			writeError(w, r, err, details)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

// ReadyzHandler answers 200 only when every dependency check passes.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name string `json:"name"`
		OK   bool   `json:"ok"`
		Err  string `json:"error,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		checks := []struct {
			name string
			fn   func(ctx context.Context) error
		}{
			{"db", s.DBCheck},
			{"redis", s.RedisCheck},
			{"kafka", s.KafkaCheck},
		}
		out := make([]check, 0, len(checks))
		allOK := true
		for _, c := range checks {
			if c.fn == nil {
				continue
			}
			res := check{Name: c.name, OK: true}
			if err := c.fn(r.Context()); err != nil {
				res.OK = false
				res.Err = err.Error()
				allOK = false
			}
			out = append(out, res)
		}
		status := http.StatusOK
		if !allOK {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]any{"checks": out})
	}
}
