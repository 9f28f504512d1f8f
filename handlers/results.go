// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/Sonu99kr/Assignment/middleware"
	"github.com/Sonu99kr/Assignment/models"
	"github.com/Sonu99kr/Assignment/poll"
)

type ResultsHandler struct {
	coord *poll.Coordinator
	clock poll.Clock
}

func NewResultsHandler(coord *poll.Coordinator, clock poll.Clock) *ResultsHandler {
	return &ResultsHandler{coord: coord, clock: clock}
}

// GetPoll handles GET /api/polls/{id}
// Counts are public while the poll is open; has_voted is set when the
// X-Voter-Token header is present.
func (h *ResultsHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, middleware.CodeInvalidRequest, "poll id is required")
		return
	}

	p, err := h.coord.GetPoll(r.Context(), pollID)
	if err != nil {
		writePollError(w, err)
		return
	}

	voterToken := strings.TrimSpace(r.Header.Get("X-Voter-Token"))
	view := withVoter(NewPollView(p, h.clock.Now()), p, voterToken)

	middleware.JSONResponse(w, http.StatusOK, view)
}

// GetResults handles GET /api/polls/{id}/results
// Returns 409 POLL_OPEN until the poll has expired
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, middleware.CodeInvalidRequest, "poll id is required")
		return
	}

	p, outcome, err := h.coord.Results(r.Context(), pollID, h.clock.Now())
	if err != nil {
		writePollError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		PollID:     p.ID,
		Question:   p.Question,
		Options:    p.Options,
		TotalVotes: p.TotalVotes(),
		Outcome:    outcome,
	})
}
