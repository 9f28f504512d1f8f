// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"fmt"

	"github.com/Sonu99kr/Assignment/models"
)

// AdmitVote validates one vote against p and returns the poll with the vote applied.
// p is never modified. Checks run in order: option range, voter token present,
// voter not yet seen. Expiry is the caller's concern.
func AdmitVote(p models.Poll, optionIndex int, voterToken string) (models.Poll, error) {
	if optionIndex < 0 || optionIndex >= len(p.Options) {
		return models.Poll{}, newError(CodeInvalidOption,
			fmt.Sprintf("option index %d out of range [0, %d)", optionIndex, len(p.Options)), nil)
	}
	if voterToken == "" {
		return models.Poll{}, ErrMissingVoter
	}
	if p.HasVoted(voterToken) {
		return models.Poll{}, ErrDuplicateVote
	}

	next := p.Clone()
	next.Options[optionIndex].Votes++
	next.VotersSeen[voterToken] = struct{}{}
	return next, nil
}
