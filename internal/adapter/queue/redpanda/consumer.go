package redpanda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/jobwave/matchengine/internal/domain"
	"github.com/jobwave/matchengine/internal/observability"
)

// Runner is the analysis pipeline as the consumer sees it.
type Runner interface {
	AnalyzeJob(ctx domain.Context, jobID string, limit int) (domain.JobAnalysisReport, error)
}

// Consumer pulls analysis tasks from the topic and drives them through the
// pipeline. One consumer processes records sequentially; scale out by
// running more workers in the same group.
type Consumer struct {
	client   *kgo.Client
	runs     domain.AnalysisRepository
	cache    domain.ReportCache
	runner   Runner
	cacheTTL time.Duration
}

// NewConsumer constructs a Consumer joined to the given group.
func NewConsumer(brokers []string, groupID string, runs domain.AnalysisRepository, cache domain.ReportCache, runner Runner, cacheTTL time.Duration) (*Consumer, error) {
	return NewConsumerWithTopic(brokers, groupID, TopicAnalyze, runs, cache, runner, cacheTTL)
}

// NewConsumerWithTopic constructs a Consumer on a specific topic. Tests use
// this for topic isolation.
func NewConsumerWithTopic(brokers []string, groupID, topic string, runs domain.AnalysisRepository, cache domain.ReportCache, runner Runner, cacheTTL time.Duration) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no seed brokers provided")
	}
	if groupID == "" {
		return nil, fmt.Errorf("missing required group ID")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(groupID),
		kgo.ConsumeTopics(topic),
		kgo.WithHooks(kotelHooks()...),
	)
	if err != nil {
		return nil, fmt.Errorf("redpanda client: %w", err)
	}
	return &Consumer{client: client, runs: runs, cache: cache, runner: runner, cacheTTL: cacheTTL}, nil
}

// Run polls until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			slog.Error("fetch error",
				slog.String("topic", topic),
				slog.Int("partition", int(partition)),
				slog.Any("error", err))
		})
		fetches.EachRecord(func(rec *kgo.Record) {
			c.processRecord(ctx, rec)
		})
	}
}

// processRecord runs one task end to end. Failures are recorded on the run;
// the record is never retried, the run's status is the source of truth.
func (c *Consumer) processRecord(ctx context.Context, rec *kgo.Record) {
	var payload domain.AnalyzeTaskPayload
	if err := json.Unmarshal(rec.Value, &payload); err != nil {
		slog.Error("undecodable task record, skipping",
			slog.String("topic", rec.Topic),
			slog.Int64("offset", rec.Offset),
			slog.Any("error", err))
		return
	}
	c.HandleTask(ctx, payload)
}

// HandleTask drives one analysis run through its lifecycle.
func (c *Consumer) HandleTask(ctx domain.Context, payload domain.AnalyzeTaskPayload) {
	log := slog.With(
		slog.String("run_id", payload.RunID),
		slog.String("job_id", payload.JobID))

	if err := c.runs.UpdateStatus(ctx, payload.RunID, domain.AnalysisProcessing, nil); err != nil {
		log.Error("cannot mark run processing", slog.Any("error", err))
	}

	rep, err := c.runner.AnalyzeJob(ctx, payload.JobID, payload.TopLimit)
	if err != nil {
		msg := runErrorMessage(err)
		log.Error("analysis run failed", slog.Any("error", err))
		if uerr := c.runs.UpdateStatus(ctx, payload.RunID, domain.AnalysisFailed, &msg); uerr != nil {
			log.Error("cannot mark run failed", slog.Any("error", uerr))
		}
		observability.RunsCompletedTotal.WithLabelValues(string(domain.AnalysisFailed)).Inc()
		return
	}

	if err := c.runs.SaveReport(ctx, payload.RunID, rep); err != nil {
		msg := "report save failed"
		log.Error("cannot save report", slog.Any("error", err))
		if uerr := c.runs.UpdateStatus(ctx, payload.RunID, domain.AnalysisFailed, &msg); uerr != nil {
			log.Error("cannot mark run failed", slog.Any("error", uerr))
		}
		observability.RunsCompletedTotal.WithLabelValues(string(domain.AnalysisFailed)).Inc()
		return
	}
	if c.cache != nil {
		if err := c.cache.Put(ctx, payload.RunID, rep, c.cacheTTL); err != nil {
			log.Warn("report cache write failed", slog.Any("error", err))
		}
	}
	if err := c.runs.UpdateStatus(ctx, payload.RunID, domain.AnalysisCompleted, nil); err != nil {
		log.Error("cannot mark run completed", slog.Any("error", err))
	}
	observability.RunsCompletedTotal.WithLabelValues(string(domain.AnalysisCompleted)).Inc()
	log.Info("analysis run completed",
		slog.Int("applications", rep.TotalApplications),
		slog.Int("top", len(rep.TopCandidates)),
		slog.Int64("processing_ms", rep.ProcessingTimeMs))
}

// runErrorMessage keeps stored error strings short and taxonomy-friendly.
func runErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "job not found"
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return "upstream timeout"
	default:
		return err.Error()
	}
}

// Close closes the underlying client, which also leaves the group.
func (c *Consumer) Close() error {
	c.client.Close()
	return nil
}
