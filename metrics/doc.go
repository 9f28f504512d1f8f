// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics holds the Prometheus collectors for voting and live delivery.

# Collectors

  - poll_votes_total{result}: accepted, or the error code of a rejected vote
  - poll_broadcast_deliveries_total{status}: sent, failed or dropped
  - poll_live_subscribers: current live subscriptions
  - poll_created_total, poll_deleted_total

New registers everything on the given registerer:

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

All methods are safe on a nil *Metrics so tests can skip instrumentation.
*/
package metrics
