// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package poll implements vote admission, expiry evaluation and the vote flow.

# Admission

AdmitVote validates a single vote against a poll snapshot and returns the
updated snapshot:

	next, err := poll.AdmitVote(p, optionIndex, voterToken)

Checks run in order and each has its own error:

  - option index in range → ErrInvalidOption
  - voter token non-empty → ErrMissingVoter
  - voter token not yet seen → ErrDuplicateVote

# Expiry

A poll is open while now < ExpiresAt. There is no stored "closed" flag:

	if !poll.IsOpen(p, now) {
		outcome := poll.ComputeOutcome(p)
	}

ComputeOutcome returns no_votes, a single winner, or a tie listing every
tied option in option order.

# Coordinator

Coordinator.SubmitVote loads the poll, rejects closed polls, runs AdmitVote,
then asks the Store for an atomic conditional write and publishes the
persisted snapshot:

	coord := poll.NewCoordinator(store, hub, m)
	p, err := coord.SubmitVote(ctx, pollID, 1, "voter-1", clock.Now())

The Store owns atomicity: its TryApplyVote inserts the voter and increments
the counter in one unit, re-checking expiry, so concurrent submissions for
one poll never double count and submissions for different polls never wait
on each other in this package.

# Errors

Every failure is a *Error carrying a stable Code:

	POLL_NOT_FOUND, POLL_CLOSED, POLL_OPEN, INVALID_OPTION,
	MISSING_VOTER, DUPLICATE_VOTE, INVALID_POLL, PERSISTENCE_ERROR

Only PERSISTENCE_ERROR is Retryable.
*/
package poll
