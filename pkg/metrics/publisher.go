package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PublisherMetrics records metadata for the outbox publishing loop.
type PublisherMetrics struct {
	pollDuration *prometheus.HistogramVec
	published    *prometheus.CounterVec
	failed       *prometheus.CounterVec
	backlog      prometheus.Gauge
}

// NewPublisherMetrics registers the publisher metrics on the provided registerer.
func NewPublisherMetrics(reg prometheus.Registerer) *PublisherMetrics {
	if reg == nil {
		return &PublisherMetrics{}
	}
	pollDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "outbox_poll_duration_seconds",
		Help:    "Duration of outbox poll iterations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"loop"})
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_events_published",
		Help: "Outbox events published to the broker.",
	}, []string{"event_type"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_events_failed",
		Help: "Outbox publish attempts that failed.",
	}, []string{"event_type"})
	backlog := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "outbox_backlog",
		Help: "Unpublished outbox rows seen by the last poll.",
	})
	reg.MustRegister(pollDuration, published, failed, backlog)
	return &PublisherMetrics{
		pollDuration: pollDuration,
		published:    published,
		failed:       failed,
		backlog:      backlog,
	}
}

// ObservePoll records the duration for the named polling loop.
func (p *PublisherMetrics) ObservePoll(loop string, duration time.Duration) {
	if p == nil || p.pollDuration == nil {
		return
	}
	p.pollDuration.WithLabelValues(normalizeLabel(loop)).Observe(duration.Seconds())
}

// IncPublished increments the published counter for the event type.
func (p *PublisherMetrics) IncPublished(eventType string) {
	if p == nil || p.published == nil {
		return
	}
	p.published.WithLabelValues(normalizeLabel(eventType)).Inc()
}

// IncFailed increments the failure counter for the event type.
func (p *PublisherMetrics) IncFailed(eventType string) {
	if p == nil || p.failed == nil {
		return
	}
	p.failed.WithLabelValues(normalizeLabel(eventType)).Inc()
}

// SetBacklog records the number of unpublished rows found by a poll.
func (p *PublisherMetrics) SetBacklog(n int) {
	if p == nil || p.backlog == nil {
		return
	}
	p.backlog.Set(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
