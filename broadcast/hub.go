// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package broadcast

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/Sonu99kr/Assignment/metrics"
	"github.com/Sonu99kr/Assignment/models"
)

// Conn is a live connection supplied by the transport layer. Send may be called
// from several goroutines when one connection follows several polls, so
// implementations must serialize their own writes. Conn values are used as map
// keys and must be comparable (typically a pointer).
type Conn interface {
	Send(payload []byte) error
}

// Encoder turns a poll snapshot into the payload sent to subscribers.
type Encoder func(snapshot models.Poll) ([]byte, error)

// Options configures a Hub. Zero values select defaults.
type Options struct {
	// EventBuffer is the number of pending publishes before new ones are dropped.
	EventBuffer int
	// SubscriberBuffer is the per-subscriber queue length before updates to it are dropped.
	SubscriberBuffer int
	Encode           Encoder
	Metrics          *metrics.Metrics
}

const (
	defaultEventBuffer      = 1024
	defaultSubscriberBuffer = 64
)

type event struct {
	pollID   string
	snapshot models.Poll
}

// Hub keeps per-poll subscriber groups and fans snapshots out to them.
// Publish only enqueues; a dispatcher goroutine encodes each snapshot once and
// hands it to every subscriber's queue, and one writer goroutine per
// subscription drains that queue in order.
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[Conn]*subscriber
	closed bool

	events           chan event
	done             chan struct{}
	wg               sync.WaitGroup
	closeOnce        sync.Once
	encode           Encoder
	subscriberBuffer int
	metrics          *metrics.Metrics
}

// NewHub starts the dispatcher. Call Close at shutdown.
func NewHub(opts Options) *Hub {
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = defaultEventBuffer
	}
	if opts.SubscriberBuffer <= 0 {
		opts.SubscriberBuffer = defaultSubscriberBuffer
	}
	if opts.Encode == nil {
		opts.Encode = func(snapshot models.Poll) ([]byte, error) {
			return json.Marshal(snapshot)
		}
	}

	h := &Hub{
		groups:           make(map[string]map[Conn]*subscriber),
		events:           make(chan event, opts.EventBuffer),
		done:             make(chan struct{}),
		encode:           opts.Encode,
		subscriberBuffer: opts.SubscriberBuffer,
		metrics:          opts.Metrics,
	}
	h.wg.Add(1)
	go h.run()
	return h
}

// Subscribe adds conn to pollID's group. Subscribing twice is a no-op.
func (h *Hub) Subscribe(pollID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	group, ok := h.groups[pollID]
	if !ok {
		group = make(map[Conn]*subscriber)
		h.groups[pollID] = group
	}
	if _, ok := group[conn]; ok {
		return
	}

	sub := &subscriber{
		pollID: pollID,
		conn:   conn,
		queue:  make(chan []byte, h.subscriberBuffer),
		quit:   make(chan struct{}),
	}
	group[conn] = sub
	h.metrics.SubscriberAdded()

	h.wg.Add(1)
	go sub.run(&h.wg, h.metrics)
}

// Unsubscribe removes conn from pollID's group. Unknown pairs are ignored.
func (h *Hub) Unsubscribe(pollID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(pollID, conn)
}

// UnsubscribeAll removes conn from every group; transports call it on teardown.
func (h *Hub) UnsubscribeAll(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for pollID := range h.groups {
		h.removeLocked(pollID, conn)
	}
}

func (h *Hub) removeLocked(pollID string, conn Conn) {
	group, ok := h.groups[pollID]
	if !ok {
		return
	}
	sub, ok := group[conn]
	if !ok {
		return
	}
	delete(group, conn)
	if len(group) == 0 {
		delete(h.groups, pollID)
	}
	close(sub.quit)
	h.metrics.SubscriberRemoved()
}

// Subscribers returns the current group size for pollID.
func (h *Hub) Subscribers(pollID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[pollID])
}

// Publish enqueues snapshot for delivery to pollID's group and returns
// immediately. It never blocks on subscribers and never fails; when the event
// queue is full the update is dropped and logged.
func (h *Hub) Publish(pollID string, snapshot models.Poll) {
	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.events <- event{pollID: pollID, snapshot: snapshot}:
	default:
		h.metrics.Delivery(metrics.DeliveryDropped)
		slog.Warn("broadcast queue full, dropping update", "poll_id", pollID)
	}
}

// Close stops the dispatcher and all subscriber writers and waits for them.
// Pending updates are discarded.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		h.mu.Lock()
		h.closed = true
		for pollID, group := range h.groups {
			for conn := range group {
				h.removeLocked(pollID, conn)
			}
		}
		h.mu.Unlock()

		close(h.done)
		h.wg.Wait()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return
		case ev := <-h.events:
			h.dispatch(ev)
		}
	}
}

func (h *Hub) dispatch(ev event) {
	h.mu.RLock()
	group := h.groups[ev.pollID]
	subs := make([]*subscriber, 0, len(group))
	for _, sub := range group {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	if len(subs) == 0 {
		return
	}

	payload, err := h.encode(ev.snapshot)
	if err != nil {
		slog.Error("failed to encode poll update", "poll_id", ev.pollID, "error", err)
		return
	}

	for _, sub := range subs {
		if !sub.enqueue(payload) {
			h.metrics.Delivery(metrics.DeliveryDropped)
			slog.Warn("subscriber queue full, dropping update", "poll_id", ev.pollID)
		}
	}
}

type subscriber struct {
	pollID string
	conn   Conn
	queue  chan []byte
	quit   chan struct{}
}

// enqueue reports false when the subscriber is too far behind.
func (s *subscriber) enqueue(payload []byte) bool {
	select {
	case <-s.quit:
		return true
	default:
	}
	select {
	case s.queue <- payload:
		return true
	default:
		return false
	}
}

func (s *subscriber) run(wg *sync.WaitGroup, m *metrics.Metrics) {
	defer wg.Done()
	for {
		select {
		case <-s.quit:
			return
		case payload := <-s.queue:
			if err := s.conn.Send(payload); err != nil {
				m.Delivery(metrics.DeliveryFailed)
				slog.Warn("failed to deliver poll update", "poll_id", s.pollID, "error", err)
				continue
			}
			m.Delivery(metrics.DeliverySent)
		}
	}
}
