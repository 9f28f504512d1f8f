// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the live poll API.

# Handler Types

Each handler is a struct over the poll coordinator and a clock:

  - PollHandler: Poll creation
  - ResultsHandler: Poll state and final results
  - VotingHandler: Vote submission and voter token issuance
  - LiveHandler: Websocket stream of poll updates

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(coord, poll.SystemClock)

# Poll Lifecycle

A poll is open from creation until its expiry instant and closed from then
on. Status is never stored; every response derives it from the clock.

	POST /api/polls             → CreatePoll ({question, options, expires_in ms})
	GET  /api/polls/{id}        → GetPoll (counts, status, outcome once closed)
	GET  /api/polls/{id}/results → GetResults (409 POLL_OPEN until closed)

# Voting Flow

	POST /api/voter-tokens       → IssueVoterToken
	POST /api/polls/{id}/vote    → SubmitVote ({option_index, voter_token})

A voter token may vote once per poll. Transient storage failures are retried
with exponential backoff; anything else is answered immediately.

# Errors

Failures are JSON bodies with a machine-readable code:

	POLL_NOT_FOUND 404, POLL_CLOSED 409, POLL_OPEN 409, DUPLICATE_VOTE 409,
	INVALID_OPTION 400, MISSING_VOTER 400, INVALID_POLL 400,
	INVALID_REQUEST 400, RATE_LIMITED 429, PERSISTENCE_ERROR 503

# Live Updates

	GET /api/polls/{id}/live  → joins {id} on connect
	GET /api/live[?poll=id]   → joins on demand

Frames are {type, poll_id, payload}. Clients send poll.join and poll.leave;
the server sends poll.snapshot after a join, poll.updated after every
accepted vote and poll.error for bad requests. Voter tokens never appear in
any response or frame.
*/
package handlers
