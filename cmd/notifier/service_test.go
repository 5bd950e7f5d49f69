package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/mvillalba/verduleria-backend/pkg/config"
	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	"github.com/mvillalba/verduleria-backend/pkg/enums"
	"github.com/mvillalba/verduleria-backend/pkg/logger"
	"github.com/mvillalba/verduleria-backend/pkg/metrics"
)

func TestProcessBatchReportsEmptyBacklog(t *testing.T) {
	repo := &fakeRepo{}
	service := newTestService(t, repo, &fakePublisher{}, nil)

	processed, err := service.processBatch(context.Background())
	if err != nil {
		t.Fatalf("process batch returned error: %v", err)
	}
	if processed {
		t.Fatal("empty backlog must not report processed")
	}
	if repo.lastMaxAttempts != service.maxAttempts {
		t.Fatalf("fetch used max attempts %d, want %d", repo.lastMaxAttempts, service.maxAttempts)
	}
}

func TestProcessBatchContinuesAfterFailure(t *testing.T) {
	repo := &fakeRepo{
		events: []models.OutboxEvent{
			notificationEvent(t, enums.EventOrderConfirmed),
			notificationEvent(t, enums.EventOrderDelivered),
		},
	}
	pub := &fakePublisher{
		results: []publishResult{
			fakePublishResult{err: errors.New("transient")},
			fakePublishResult{},
		},
	}
	service := newTestService(t, repo, pub, nil)

	processed, err := service.processBatch(context.Background())
	if err != nil {
		t.Fatalf("process batch returned error: %v", err)
	}
	if !processed {
		t.Fatal("expected batch to report processed")
	}
	if got := len(repo.failed); got != 1 {
		t.Fatalf("unexpected number of failed rows: %d", got)
	}
	if got := len(repo.published); got != 1 {
		t.Fatalf("unexpected number of published rows: %d", got)
	}
	if repo.failed[0] != repo.events[0].ID {
		t.Fatal("failed row recorded wrong ID")
	}
	if repo.published[0] != repo.events[1].ID {
		t.Fatal("published row recorded wrong ID")
	}
}

func TestProcessBatchSetsMessageAttributes(t *testing.T) {
	event := notificationEvent(t, enums.EventBatchFinalized)
	repo := &fakeRepo{events: []models.OutboxEvent{event}}
	pub := &fakePublisher{results: []publishResult{fakePublishResult{}}}
	service := newTestService(t, repo, pub, nil)

	if _, err := service.processBatch(context.Background()); err != nil {
		t.Fatalf("process batch returned error: %v", err)
	}
	if len(pub.messages) != 1 {
		t.Fatalf("expected one publish, got %d", len(pub.messages))
	}
	msg := pub.messages[0]
	if got := msg.Attributes["event_type"]; got != string(enums.EventBatchFinalized) {
		t.Fatalf("unexpected event_type attribute %q", got)
	}
	if got := msg.Attributes["event_id"]; got != event.ID.String() {
		t.Fatalf("unexpected event_id attribute %q", got)
	}
	if string(msg.Data) != string(event.Payload) {
		t.Fatal("message data must carry the stored payload")
	}
}

func TestProcessBatchStopsWhenMarkingFails(t *testing.T) {
	repo := &fakeRepo{
		events:  []models.OutboxEvent{notificationEvent(t, enums.EventOrderConfirmed)},
		markErr: errors.New("db down"),
	}
	pub := &fakePublisher{results: []publishResult{fakePublishResult{}}}
	service := newTestService(t, repo, pub, nil)

	processed, err := service.processBatch(context.Background())
	if err == nil {
		t.Fatal("expected marking error to surface")
	}
	if !processed {
		t.Fatal("batch with fetched rows must report processed")
	}
}

func TestNewServiceAppliesConfigDefaults(t *testing.T) {
	service := newTestService(t, &fakeRepo{}, &fakePublisher{}, &config.NotifierConfig{})

	if service.batchSize != defaultBatchSize {
		t.Fatalf("batch size %d, want %d", service.batchSize, defaultBatchSize)
	}
	if service.maxAttempts != defaultMaxAttempts {
		t.Fatalf("max attempts %d, want %d", service.maxAttempts, defaultMaxAttempts)
	}
}

func newTestService(t *testing.T, repo outboxRepository, pub publisher, notifierOverride *config.NotifierConfig) *Service {
	t.Helper()
	notifierCfg := config.NotifierConfig{
		BatchSize:      2,
		PollIntervalMS: 100,
		MaxAttempts:    5,
	}
	if notifierOverride != nil {
		notifierCfg = *notifierOverride
	}
	cfg := &config.Config{Notifier: notifierCfg}
	logg := logger.New(logger.Options{
		ServiceName: "notifier-test",
		Output:      io.Discard,
	})
	service, err := NewService(ServiceParams{
		Config:     cfg,
		Logger:     logg,
		DB:         fakePinger{},
		PubSub:     fakePinger{},
		Repository: repo,
		Publisher:  pub,
		Metrics:    metrics.NewPublisherMetrics(nil),
	})
	if err != nil {
		t.Fatalf("failed to construct service: %v", err)
	}
	return service
}

func notificationEvent(tb testing.TB, eventType enums.OutboxEventType) models.OutboxEvent {
	tb.Helper()
	payload, err := json.Marshal(map[string]any{"order_id": 1})
	if err != nil {
		tb.Fatalf("marshal payload: %v", err)
	}
	return models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     eventType,
		AggregateType: enums.AggregateOrder,
		AggregateID:   "1",
		Payload:       payload,
	}
}

type fakeRepo struct {
	events          []models.OutboxEvent
	published       []uuid.UUID
	failed          []uuid.UUID
	markErr         error
	lastMaxAttempts int
}

func (f *fakeRepo) FetchUnpublished(limit, maxAttempts int) ([]models.OutboxEvent, error) {
	f.lastMaxAttempts = maxAttempts
	if len(f.events) > limit {
		return f.events[:limit], nil
	}
	return f.events, nil
}

func (f *fakeRepo) MarkPublished(id uuid.UUID) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.published = append(f.published, id)
	return nil
}

func (f *fakeRepo) MarkFailed(id uuid.UUID, err error) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakePinger struct{}

func (fakePinger) Ping(context.Context) error { return nil }

type fakePublisher struct {
	results  []publishResult
	messages []*gcppubsub.Message
}

func (f *fakePublisher) Publish(_ context.Context, msg *gcppubsub.Message) publishResult {
	f.messages = append(f.messages, msg)
	if len(f.results) == 0 {
		return nil
	}
	result := f.results[0]
	f.results = f.results[1:]
	return result
}

type fakePublishResult struct {
	err error
}

func (f fakePublishResult) Get(context.Context) (string, error) {
	return "", f.err
}
