package models

import (
	"encoding/json"
	"time"
)

// Poll status values. Status is always derived from ExpiresAt, never stored.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Outcome kinds for a closed poll
const (
	OutcomeNoVotes = "no_votes"
	OutcomeWinner  = "winner"
	OutcomeTie     = "tie"
)

// Live frame types
const (
	FramePollJoin     = "poll.join"
	FramePollLeave    = "poll.leave"
	FramePollSnapshot = "poll.snapshot"
	FramePollUpdated  = "poll.updated"
	FramePollError    = "poll.error"
)

// Domain types

type Option struct {
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

type Poll struct {
	ID         string              `json:"id"`
	Question   string              `json:"question"`
	Options    []Option            `json:"options"`
	VotersSeen map[string]struct{} `json:"-"` // Never expose voter tokens
	ExpiresAt  time.Time           `json:"expires_at"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Clone returns a deep copy so callers can mutate without touching shared state.
func (p Poll) Clone() Poll {
	out := p
	out.Options = make([]Option, len(p.Options))
	copy(out.Options, p.Options)
	out.VotersSeen = make(map[string]struct{}, len(p.VotersSeen))
	for token := range p.VotersSeen {
		out.VotersSeen[token] = struct{}{}
	}
	return out
}

func (p Poll) HasVoted(voterToken string) bool {
	_, ok := p.VotersSeen[voterToken]
	return ok
}

func (p Poll) VoterCount() int {
	return len(p.VotersSeen)
}

func (p Poll) TotalVotes() int {
	total := 0
	for _, opt := range p.Options {
		total += opt.Votes
	}
	return total
}

// Outcome is the derived result of a closed poll.
// Winners holds one text for OutcomeWinner and all tied texts, in option order, for OutcomeTie.
type Outcome struct {
	Kind    string   `json:"kind"`
	Winners []string `json:"winners,omitempty"`
}

// Request types

type CreatePollRequest struct {
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	ExpiresIn int64    `json:"expires_in"` // milliseconds
}

type VoteRequest struct {
	OptionIndex *int   `json:"option_index"`
	VoterToken  string `json:"voter_token"`
}

// Response types

type PollView struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Options    []Option  `json:"options"`
	TotalVotes int       `json:"total_votes"`
	VoterCount int       `json:"voter_count"`
	Status     string    `json:"status"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	ClosesIn   string    `json:"closes_in,omitempty"`
	HasVoted   *bool     `json:"has_voted,omitempty"`
	Outcome    *Outcome  `json:"outcome,omitempty"`
}

type ResultsResponse struct {
	PollID     string   `json:"poll_id"`
	Question   string   `json:"question"`
	Options    []Option `json:"options"`
	TotalVotes int      `json:"total_votes"`
	Outcome    Outcome  `json:"outcome"`
}

type VoterTokenResponse struct {
	VoterToken string `json:"voter_token"`
}

// LiveFrame is the websocket envelope in both directions.
type LiveFrame struct {
	Type    string          `json:"type"`
	PollID  string          `json:"poll_id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// LiveError is the payload of a poll.error frame.
type LiveError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
