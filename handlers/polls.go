// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/Sonu99kr/Assignment/middleware"
	"github.com/Sonu99kr/Assignment/models"
	"github.com/Sonu99kr/Assignment/poll"
)

type PollHandler struct {
	coord *poll.Coordinator
	clock poll.Clock
}

func NewPollHandler(coord *poll.Coordinator, clock poll.Clock) *PollHandler {
	return &PollHandler{coord: coord, clock: clock}
}

// CreatePoll handles POST /api/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid JSON")
		return
	}

	// expires_in is milliseconds; bound it both ways before converting to a Duration
	if req.ExpiresIn <= 0 {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, string(poll.CodeInvalidPoll), "expires_in must be positive")
		return
	}
	if req.ExpiresIn > poll.MaxPollDuration.Milliseconds() {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, string(poll.CodeInvalidPoll), "expires_in is too large")
		return
	}
	expiresIn := time.Duration(req.ExpiresIn) * time.Millisecond

	now := h.clock.Now()
	p, err := h.coord.CreatePoll(r.Context(), req.Question, req.Options, expiresIn, now)
	if err != nil {
		writePollError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, NewPollView(p, now))
}
