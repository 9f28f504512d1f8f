// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Sonu99kr/Assignment/broadcast"
	"github.com/Sonu99kr/Assignment/models"
	"github.com/Sonu99kr/Assignment/poll"
)

// NewPollView renders a poll as clients see it at now. Voter tokens never
// leave the server; only the count does.
func NewPollView(p models.Poll, now time.Time) models.PollView {
	options := make([]models.Option, len(p.Options))
	copy(options, p.Options)

	view := models.PollView{
		ID:         p.ID,
		Question:   p.Question,
		Options:    options,
		TotalVotes: p.TotalVotes(),
		VoterCount: p.VoterCount(),
		Status:     poll.Status(p, now),
		ExpiresAt:  p.ExpiresAt,
		CreatedAt:  p.CreatedAt,
	}

	if view.Status == models.StatusOpen {
		view.ClosesIn = humanize.RelTime(p.ExpiresAt, now, "ago", "from now")
	} else {
		outcome := poll.ComputeOutcome(p)
		view.Outcome = &outcome
	}

	return view
}

// withVoter marks whether voterToken has voted. An empty token leaves
// HasVoted unset.
func withVoter(view models.PollView, p models.Poll, voterToken string) models.PollView {
	if voterToken == "" {
		return view
	}
	voted := p.HasVoted(voterToken)
	view.HasVoted = &voted
	return view
}

// NewLiveEncoder returns the hub encoder producing poll.updated frames.
// Status is evaluated with clock when the update is encoded.
func NewLiveEncoder(clock poll.Clock) broadcast.Encoder {
	return func(snapshot models.Poll) ([]byte, error) {
		return encodeFrame(models.FramePollUpdated, snapshot.ID, NewPollView(snapshot, clock.Now()))
	}
}

func encodeFrame(frameType, pollID string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(models.LiveFrame{
		Type:    frameType,
		PollID:  pollID,
		Payload: raw,
	})
}
