// Package metrics holds the Prometheus collectors shared by the services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Publish outcomes
const (
	OutcomePublished = "published"
	OutcomeFailed    = "failed"
)

// Consume outcomes
const (
	OutcomeStored       = "stored"
	OutcomeMalformed    = "malformed"
	OutcomeUnknownTopic = "unknown_topic"
	OutcomeInsertFailed = "insert_failed"
)

var EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "posts_events_published_total",
	Help: "The number of interaction events the posts service attempted to publish",
}, []string{"topic", "outcome"})

var EventsConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "stats_events_consumed_total",
	Help: "The number of bus messages handled by the statistics consumer",
}, []string{"topic", "outcome"})

var ConsumerState = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "stats_consumer_state",
	Help: "Current consumer state (0=stopped, 1=connecting, 2=subscribed, 3=consuming)",
})

var RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rpc_requests_total",
	Help: "The number of unary RPCs handled",
}, []string{"service", "method", "code"})

var RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "rpc_request_duration_seconds",
	Help:    "The duration of unary RPCs",
	Buckets: prometheus.DefBuckets,
}, []string{"service", "method"})
