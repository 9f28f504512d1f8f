// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Sonu99kr/Assignment/middleware"
	"github.com/Sonu99kr/Assignment/poll"
)

// StatusFor maps a poll error code to its HTTP status.
func StatusFor(code poll.Code) int {
	switch code {
	case poll.CodeNotFound:
		return http.StatusNotFound
	case poll.CodePollClosed, poll.CodePollOpen, poll.CodeDuplicateVote:
		return http.StatusConflict
	case poll.CodeInvalidOption, poll.CodeMissingVoter, poll.CodeInvalidPoll:
		return http.StatusBadRequest
	case poll.CodePersistence:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writePollError writes err as a coded JSON error. Causes stay in the logs.
func writePollError(w http.ResponseWriter, err error) {
	var pe *poll.Error
	if !errors.As(err, &pe) {
		slog.Error("unexpected error", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Internal error")
		return
	}
	middleware.CodedErrorResponse(w, StatusFor(pe.Code), string(pe.Code), pe.Message)
}
