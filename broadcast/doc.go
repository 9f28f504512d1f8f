// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package broadcast fans poll updates out to live subscribers.

# Lifecycle

A Hub is created once at process start and closed at shutdown:

	hub := broadcast.NewHub(broadcast.Options{Encode: encodeUpdate, Metrics: m})
	defer hub.Close()

It is handed to the poll coordinator as its Publisher; nothing reaches it
through package state.

# Subscriptions

The transport layer registers connections per poll:

	hub.Subscribe(pollID, conn)
	hub.Unsubscribe(pollID, conn)
	hub.UnsubscribeAll(conn) // on connection close

Subscribe is idempotent and Unsubscribe of an unknown pair is a no-op.
Membership is in memory only; after a restart clients resubscribe.

# Delivery

Publish enqueues and returns. The dispatcher encodes the snapshot once and
pushes the payload onto each subscriber's queue; a writer goroutine per
subscription calls Conn.Send. Consequences:

  - a slow or failing connection never delays other subscribers or the publisher
  - each subscriber receives updates for a poll in publish order
  - send failures are logged and counted, never returned

When a queue is full the update is dropped for that subscriber. Every payload
is a full snapshot, so the next update supersedes a dropped one.
*/
package broadcast
