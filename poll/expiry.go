// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"time"

	"github.com/Sonu99kr/Assignment/models"
)

// Clock supplies the current time. Handlers read it once per request and pass
// the value down so every check in that request sees the same instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock reads wall-clock time.
var SystemClock Clock = systemClock{}

// IsOpen reports whether p still accepts votes at now.
func IsOpen(p models.Poll, now time.Time) bool {
	return now.Before(p.ExpiresAt)
}

// Status returns models.StatusOpen or models.StatusClosed.
func Status(p models.Poll, now time.Time) string {
	if IsOpen(p, now) {
		return models.StatusOpen
	}
	return models.StatusClosed
}

// ComputeOutcome derives the result of a closed poll from its final counts.
// Ties are reported with every tied option text in option order.
func ComputeOutcome(p models.Poll) models.Outcome {
	maxVotes := 0
	for _, opt := range p.Options {
		if opt.Votes > maxVotes {
			maxVotes = opt.Votes
		}
	}
	if maxVotes == 0 {
		return models.Outcome{Kind: models.OutcomeNoVotes}
	}

	var winners []string
	for _, opt := range p.Options {
		if opt.Votes == maxVotes {
			winners = append(winners, opt.Text)
		}
	}
	if len(winners) == 1 {
		return models.Outcome{Kind: models.OutcomeWinner, Winners: winners}
	}
	return models.Outcome{Kind: models.OutcomeTie, Winners: winners}
}
