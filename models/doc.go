// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Poll: question, ordered options, voter set, expiry and creation time
  - Option: option text and its vote counter
  - Outcome: derived result of a closed poll (no_votes, winner, tie)

Poll.VotersSeen is never serialized. Use Clone before mutating a Poll that
may be shared with other goroutines:

	next := poll.Clone()
	next.Options[0].Votes++

# Request Types

  - CreatePollRequest: question, options, expires_in (milliseconds)
  - VoteRequest: option_index, voter_token

# Response Types

  - PollView: public poll state including status, closes_in and outcome
  - ResultsResponse: final counts and outcome of a closed poll
  - VoterTokenResponse: voter_token
  - ErrorResponse: error, code, message

# Live Frames

LiveFrame is exchanged over the websocket transport:

	{"type":"poll.join","poll_id":"..."}
	{"type":"poll.updated","poll_id":"...","payload":{...PollView...}}

# Constants

Status values:

	StatusOpen   = "open"
	StatusClosed = "closed"

Outcome kinds:

	OutcomeNoVotes = "no_votes"
	OutcomeWinner  = "winner"
	OutcomeTie     = "tie"
*/
package models
