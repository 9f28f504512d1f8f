// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Delivery statuses
const (
	DeliverySent    = "sent"
	DeliveryFailed  = "failed"
	DeliveryDropped = "dropped"
)

// ResultAccepted labels a vote that was durably recorded.
const ResultAccepted = "accepted"

type Metrics struct {
	votes        *prometheus.CounterVec
	deliveries   *prometheus.CounterVec
	subscribers  prometheus.Gauge
	pollsCreated prometheus.Counter
	pollsDeleted prometheus.Counter
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		votes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "poll_votes_total",
			Help: "Vote submissions by result (accepted or error code).",
		}, []string{"result"}),
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "poll_broadcast_deliveries_total",
			Help: "Live update deliveries to subscribers by status.",
		}, []string{"status"}),
		subscribers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "poll_live_subscribers",
			Help: "Current number of live poll subscriptions.",
		}),
		pollsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "poll_created_total",
			Help: "Polls created.",
		}),
		pollsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "poll_deleted_total",
			Help: "Expired polls removed by the retention janitor.",
		}),
	}
}

func (m *Metrics) VoteResult(result string) {
	if m == nil {
		return
	}
	m.votes.WithLabelValues(result).Inc()
}

func (m *Metrics) Delivery(status string) {
	if m == nil {
		return
	}
	m.deliveries.WithLabelValues(status).Inc()
}

func (m *Metrics) SubscriberAdded() {
	if m == nil {
		return
	}
	m.subscribers.Inc()
}

func (m *Metrics) SubscriberRemoved() {
	if m == nil {
		return
	}
	m.subscribers.Dec()
}

func (m *Metrics) PollCreated() {
	if m == nil {
		return
	}
	m.pollsCreated.Inc()
}

func (m *Metrics) PollsDeleted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.pollsDeleted.Add(float64(n))
}
