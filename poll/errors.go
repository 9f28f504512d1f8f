// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"errors"
)

// Code is a stable, machine-readable error code returned to clients.
type Code string

const (
	CodeNotFound      Code = "POLL_NOT_FOUND"
	CodePollClosed    Code = "POLL_CLOSED"
	CodePollOpen      Code = "POLL_OPEN"
	CodeInvalidOption Code = "INVALID_OPTION"
	CodeMissingVoter  Code = "MISSING_VOTER"
	CodeDuplicateVote Code = "DUPLICATE_VOTE"
	CodeInvalidPoll   Code = "INVALID_POLL"
	CodePersistence   Code = "PERSISTENCE_ERROR"
	CodeUnknown       Code = "UNKNOWN"
)

// Error is the typed failure returned by the coordinator and admission engine.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches by code, so errors.Is(err, ErrDuplicateVote) holds for any
// duplicate-vote error regardless of message.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrNotFound      = &Error{Code: CodeNotFound, Message: "poll not found"}
	ErrPollClosed    = &Error{Code: CodePollClosed, Message: "poll is closed"}
	ErrPollOpen      = &Error{Code: CodePollOpen, Message: "poll is still open"}
	ErrInvalidOption = &Error{Code: CodeInvalidOption, Message: "option does not exist"}
	ErrMissingVoter  = &Error{Code: CodeMissingVoter, Message: "voter token is required"}
	ErrDuplicateVote = &Error{Code: CodeDuplicateVote, Message: "voter has already voted"}
	ErrInvalidPoll   = &Error{Code: CodeInvalidPoll, Message: "invalid poll"}
	ErrPersistence   = &Error{Code: CodePersistence, Message: "failed to persist poll"}
)

// ErrAlreadyVoted is returned by a Store when the conditional vote write
// finds the voter token already recorded.
var ErrAlreadyVoted = errors.New("voter token already recorded")

// ErrConflict is returned by a Store when a create collides with an existing poll.
var ErrConflict = errors.New("poll already exists")

func newError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the error code from err, or CodeUnknown.
func CodeOf(err error) Code {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return CodeUnknown
}

// Retryable reports whether retrying the same request could succeed.
// Only transient persistence faults qualify.
func Retryable(err error) bool {
	return CodeOf(err) == CodePersistence
}
