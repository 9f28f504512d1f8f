// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.VoteResult(ResultAccepted)
	m.VoteResult(ResultAccepted)
	m.VoteResult("DUPLICATE_VOTE")
	m.Delivery(DeliverySent)
	m.Delivery(DeliveryFailed)
	m.SubscriberAdded()
	m.SubscriberAdded()
	m.SubscriberRemoved()
	m.PollCreated()
	m.PollsDeleted(3)
	m.PollsDeleted(0)

	require.Equal(t, 2.0, testutil.ToFloat64(m.votes.WithLabelValues(ResultAccepted)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.votes.WithLabelValues("DUPLICATE_VOTE")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.deliveries.WithLabelValues(DeliveryFailed)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.subscribers))
	require.Equal(t, 1.0, testutil.ToFloat64(m.pollsCreated))
	require.Equal(t, 3.0, testutil.ToFloat64(m.pollsDeleted))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.VoteResult(ResultAccepted)
		m.Delivery(DeliveryDropped)
		m.SubscriberAdded()
		m.SubscriberRemoved()
		m.PollCreated()
		m.PollsDeleted(2)
	})
}
