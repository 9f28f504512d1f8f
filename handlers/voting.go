// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/Sonu99kr/Assignment/auth"
	"github.com/Sonu99kr/Assignment/middleware"
	"github.com/Sonu99kr/Assignment/models"
	"github.com/Sonu99kr/Assignment/poll"
)

const (
	retryInitialInterval = 50 * time.Millisecond
	retryMaxInterval     = 500 * time.Millisecond
)

type VotingHandler struct {
	coord      *poll.Coordinator
	clock      poll.Clock
	retryTries uint
}

func NewVotingHandler(coord *poll.Coordinator, clock poll.Clock, retryTries uint) *VotingHandler {
	if retryTries == 0 {
		retryTries = 1
	}
	return &VotingHandler{coord: coord, clock: clock, retryTries: retryTries}
}

// SubmitVote handles POST /api/polls/{id}/vote
// Transient storage failures are retried with exponential backoff. A retry
// after a write that actually landed reports DUPLICATE_VOTE.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, middleware.CodeInvalidRequest, "poll id is required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid JSON")
		return
	}
	if req.OptionIndex == nil {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, string(poll.CodeInvalidOption), "option_index is required")
		return
	}
	if err := auth.CheckVoterToken(req.VoterToken); err != nil {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, middleware.CodeInvalidRequest, err.Error())
		return
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	b.MaxInterval = retryMaxInterval

	attempt := 0
	p, err := backoff.Retry(r.Context(), func() (models.Poll, error) {
		attempt++
		p, err := h.coord.SubmitVote(r.Context(), pollID, *req.OptionIndex, req.VoterToken, h.clock.Now())
		if err != nil && !poll.Retryable(err) {
			return models.Poll{}, backoff.Permanent(err)
		}
		if err != nil {
			slog.Warn("vote attempt failed", "poll_id", pollID, "attempt", attempt, "error", err)
		}
		return p, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(h.retryTries))
	if err != nil {
		writePollError(w, err)
		return
	}

	view := withVoter(NewPollView(p, h.clock.Now()), p, req.VoterToken)
	middleware.JSONResponse(w, http.StatusOK, view)
}

// IssueVoterToken handles POST /api/voter-tokens
// Hands out a random token for clients that do not bring their own
func (h *VotingHandler) IssueVoterToken(w http.ResponseWriter, r *http.Request) {
	token, err := auth.GenerateVoterToken()
	if err != nil {
		slog.Error("failed to generate voter token", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Failed to issue voter token")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.VoterTokenResponse{VoterToken: token})
}
