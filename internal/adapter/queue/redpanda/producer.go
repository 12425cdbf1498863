// Package redpanda carries analysis tasks between the API and the workers
// over a Redpanda/Kafka topic.
package redpanda

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"

	"github.com/jobwave/matchengine/internal/domain"
	"github.com/jobwave/matchengine/internal/observability"
)

// TopicAnalyze is the topic carrying batch analysis tasks.
const TopicAnalyze = "analyze-jobs"

// Producer implements domain.Queue on a Kafka producer client.
type Producer struct {
	client *kgo.Client
	topic  string
}

// NewProducer constructs a Producer and ensures the topic exists.
func NewProducer(brokers []string) (*Producer, error) {
	return NewProducerWithTopic(brokers, TopicAnalyze)
}

// NewProducerWithTopic constructs a Producer on a specific topic. Tests use
// this for topic isolation.
func NewProducerWithTopic(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no seed brokers provided")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.RequestRetries(10),
		kgo.WithHooks(kotelHooks()...),
	)
	if err != nil {
		return nil, fmt.Errorf("redpanda client: %w", err)
	}
	if err := ensureTopic(context.Background(), client, topic, 4, 1); err != nil {
		slog.Warn("topic bootstrap failed",
			slog.String("topic", topic),
			slog.Any("error", err))
	}
	return &Producer{client: client, topic: topic}, nil
}

// EnqueueAnalyze publishes the task keyed by run id and returns the run id
// as the task id.
func (p *Producer) EnqueueAnalyze(ctx domain.Context, payload domain.AnalyzeTaskPayload) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("op=queue.marshal: %w", err)
	}
	rec := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(payload.RunID),
		Value: b,
		Headers: []kgo.RecordHeader{
			{Key: "run_id", Value: []byte(payload.RunID)},
			{Key: "job_id", Value: []byte(payload.JobID)},
		},
	}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return "", fmt.Errorf("op=queue.produce: %w", err)
	}
	observability.RunsEnqueuedTotal.Inc()
	slog.Info("analysis task produced",
		slog.String("topic", p.topic),
		slog.String("run_id", payload.RunID),
		slog.String("job_id", payload.JobID))
	return payload.RunID, nil
}

// Close flushes and closes the underlying client.
func (p *Producer) Close() error {
	p.client.Close()
	return nil
}

func kotelHooks() []kgo.Hook {
	tracer := kotel.NewTracer(kotel.TracerProvider(otel.GetTracerProvider()))
	return kotel.NewKotel(kotel.WithTracer(tracer)).Hooks()
}
