// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Message flow metrics
	MessagesSeen  prometheus.Counter
	MessagesGated *prometheus.CounterVec

	// Mention metrics
	MentionsFound      *prometheus.CounterVec
	MentionsSuppressed prometheus.Counter

	// Lookup metrics
	LookupsTotal  *prometheus.CounterVec
	LookupLatency *prometheus.HistogramVec

	// Dispatch metrics
	RepliesSent   prometheus.Counter
	ReplyFailures prometheus.Counter

	// Cache metrics
	ThrottleEntries prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "token_mention_bot"
	}

	return &Metrics{
		MessagesSeen: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_seen_total",
			Help:      "Total number of inbound messages received from Telegram.",
		}),
		MessagesGated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_gated_total",
			Help:      "Messages discarded before extraction, by gate.",
		}, []string{"gate"}),
		MentionsFound: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mentions_found_total",
			Help:      "Candidate addresses extracted from messages, by chain family.",
		}, []string{"family"}),
		MentionsSuppressed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mentions_suppressed_total",
			Help:      "Mentions skipped because a recent notification exists.",
		}),
		LookupsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Metadata lookups, by chain family and outcome.",
		}, []string{"family", "outcome"}),
		LookupLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "Metadata lookup latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"family"}),
		RepliesSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_sent_total",
			Help:      "Token summaries successfully delivered.",
		}),
		ReplyFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reply_failures_total",
			Help:      "Token summaries that failed to send.",
		}),
		ThrottleEntries: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "throttle_entries",
			Help:      "Current number of entries in the throttle cache.",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordMessageSeen increments the inbound message counter.
func RecordMessageSeen() {
	DefaultMetrics.MessagesSeen.Inc()
}

// RecordMessageGated records a message discarded before extraction.
func RecordMessageGated(gate string) {
	DefaultMetrics.MessagesGated.WithLabelValues(gate).Inc()
}

// RecordMentionFound increments the extracted candidate counter.
func RecordMentionFound(family string) {
	DefaultMetrics.MentionsFound.WithLabelValues(family).Inc()
}

// RecordMentionSuppressed increments the suppressed mention counter.
func RecordMentionSuppressed() {
	DefaultMetrics.MentionsSuppressed.Inc()
}

// RecordLookup records one metadata lookup with its latency.
func RecordLookup(family, outcome string, seconds float64) {
	DefaultMetrics.LookupsTotal.WithLabelValues(family, outcome).Inc()
	DefaultMetrics.LookupLatency.WithLabelValues(family).Observe(seconds)
}

// RecordReplySent increments the delivered reply counter.
func RecordReplySent() {
	DefaultMetrics.RepliesSent.Inc()
}

// RecordReplyFailure increments the failed reply counter.
func RecordReplyFailure() {
	DefaultMetrics.ReplyFailures.Inc()
}

// UpdateThrottleEntries updates the throttle cache size gauge.
func UpdateThrottleEntries(n int) {
	DefaultMetrics.ThrottleEntries.Set(float64(n))
}
