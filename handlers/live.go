// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	"github.com/Sonu99kr/Assignment/broadcast"
	"github.com/Sonu99kr/Assignment/middleware"
	"github.com/Sonu99kr/Assignment/models"
	"github.com/Sonu99kr/Assignment/poll"
)

const (
	maxLiveFrameBytes      = 4 << 10
	maxLiveFramesPerSecond = 20
	maxLiveDecodeErrors    = 5
	liveWriteTimeout       = 5 * time.Second
)

// LiveHandler upgrades to a websocket and streams poll snapshots. A
// connection may follow several polls through poll.join and poll.leave frames.
type LiveHandler struct {
	coord         *poll.Coordinator
	hub           *broadcast.Hub
	clock         poll.Clock
	allowedOrigin string
}

func NewLiveHandler(coord *poll.Coordinator, hub *broadcast.Hub, clock poll.Clock, allowedOrigin string) *LiveHandler {
	return &LiveHandler{coord: coord, hub: hub, clock: clock, allowedOrigin: allowedOrigin}
}

// livePeer is the broadcast.Conn for one websocket. The hub writes from one
// goroutine per followed poll, so sends are serialized here.
type livePeer struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (p *livePeer) Send(payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	return websocket.Message.Send(p.conn, string(payload))
}

func (p *livePeer) sendFrame(frameType, pollID string, payload any) error {
	data, err := encodeFrame(frameType, pollID, payload)
	if err != nil {
		return err
	}
	return p.Send(data)
}

func (p *livePeer) sendError(pollID, code, message string) {
	if err := p.sendFrame(models.FramePollError, pollID, models.LiveError{Code: code, Message: message}); err != nil {
		slog.Debug("failed to send live error", "poll_id", pollID, "error", err)
	}
}

// Live handles GET /api/live and GET /api/polls/{id}/live. The poll in the
// path, or in the ?poll= query parameter, is joined on connect.
func (h *LiveHandler) Live(w http.ResponseWriter, r *http.Request) {
	initial := r.PathValue("id")
	if initial == "" {
		initial = strings.TrimSpace(r.URL.Query().Get("poll"))
	}

	srv := websocket.Server{
		Handshake: h.checkOrigin,
		Handler: func(conn *websocket.Conn) {
			h.serveConn(r.Context(), conn, initial)
		},
	}
	srv.ServeHTTP(w, r)
}

func (h *LiveHandler) checkOrigin(_ *websocket.Config, r *http.Request) error {
	if h.allowedOrigin == "" || h.allowedOrigin == "*" {
		return nil
	}
	if r.Header.Get("Origin") != h.allowedOrigin {
		return errors.New("origin not allowed")
	}
	return nil
}

func (h *LiveHandler) serveConn(ctx context.Context, conn *websocket.Conn, initial string) {
	conn.MaxPayloadBytes = maxLiveFrameBytes
	peer := &livePeer{conn: conn}
	defer func() {
		h.hub.UnsubscribeAll(peer)
		_ = conn.Close()
	}()

	if initial != "" {
		h.join(ctx, peer, initial)
	}

	windowStart := time.Now()
	framesInWindow := 0
	decodeErrors := 0

	for {
		var raw []byte
		if err := websocket.Message.Receive(conn, &raw); err != nil {
			if errors.Is(err, websocket.ErrFrameTooLarge) {
				peer.sendError("", middleware.CodeInvalidRequest, "frame too large")
				continue
			}
			if !errors.Is(err, io.EOF) {
				slog.Debug("live connection closed", "remote", conn.Request().RemoteAddr, "error", err)
			}
			return
		}

		now := time.Now()
		if now.Sub(windowStart) >= time.Second {
			windowStart = now
			framesInWindow = 0
		}
		framesInWindow++
		if framesInWindow > maxLiveFramesPerSecond {
			peer.sendError("", middleware.CodeRateLimited, "too many frames")
			return
		}

		var frame models.LiveFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			decodeErrors++
			peer.sendError("", middleware.CodeInvalidRequest, "invalid frame")
			if decodeErrors >= maxLiveDecodeErrors {
				return
			}
			continue
		}
		decodeErrors = 0

		pollID := strings.TrimSpace(frame.PollID)
		switch frame.Type {
		case models.FramePollJoin:
			if pollID == "" {
				peer.sendError("", middleware.CodeInvalidRequest, "poll_id is required")
				continue
			}
			h.join(ctx, peer, pollID)
		case models.FramePollLeave:
			h.hub.Unsubscribe(pollID, peer)
		default:
			peer.sendError(pollID, middleware.CodeInvalidRequest, "unsupported frame type")
		}
	}
}

// join subscribes peer to pollID and sends the current snapshot. The
// snapshot is read after subscribing so no accepted vote falls between them;
// it may arrive after a newer update, and clients keep the one with the
// higher voter_count.
func (h *LiveHandler) join(ctx context.Context, peer *livePeer, pollID string) {
	if _, err := h.coord.GetPoll(ctx, pollID); err != nil {
		peer.sendError(pollID, string(poll.CodeOf(err)), "poll not available")
		return
	}

	h.hub.Subscribe(pollID, peer)

	p, err := h.coord.GetPoll(ctx, pollID)
	if err != nil {
		h.hub.Unsubscribe(pollID, peer)
		peer.sendError(pollID, string(poll.CodeOf(err)), "poll not available")
		return
	}

	if err := peer.sendFrame(models.FramePollSnapshot, pollID, NewPollView(p, h.clock.Now())); err != nil {
		slog.Debug("failed to send live snapshot", "poll_id", pollID, "error", err)
	}
}
