// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sonu99kr/Assignment/metrics"
	"github.com/Sonu99kr/Assignment/models"
)

// MinOptions is the smallest number of options a poll may have.
const MinOptions = 2

// MaxPollDuration caps how far in the future a poll may close.
const MaxPollDuration = 365 * 24 * time.Hour

// Store is the persistence contract the coordinator depends on.
//
// TryApplyVote must be atomic: it records voterToken and increments the
// option counter together, only if the token is absent and now is before the
// poll's expiry. It returns ErrNotFound, ErrPollClosed, ErrInvalidOption or
// ErrAlreadyVoted when the condition fails.
type Store interface {
	Create(ctx context.Context, p models.Poll) error
	Get(ctx context.Context, pollID string) (models.Poll, error)
	TryApplyVote(ctx context.Context, pollID string, optionIndex int, voterToken string, now time.Time) (models.Poll, error)
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// Publisher fans a persisted snapshot out to live viewers. Publish must not block
// on delivery and never reports failure.
type Publisher interface {
	Publish(pollID string, snapshot models.Poll)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, models.Poll) {}

// Coordinator runs the vote flow: load, expiry check, admission, atomic write, publish.
type Coordinator struct {
	store     Store
	publisher Publisher
	metrics   *metrics.Metrics
}

func NewCoordinator(store Store, publisher Publisher, m *metrics.Metrics) *Coordinator {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &Coordinator{store: store, publisher: publisher, metrics: m}
}

// CreatePoll validates the request and stores a new poll expiring expiresIn after now.
func (c *Coordinator) CreatePoll(ctx context.Context, question string, options []string, expiresIn time.Duration, now time.Time) (models.Poll, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return models.Poll{}, newError(CodeInvalidPoll, "question is required", nil)
	}
	if len(options) < MinOptions {
		return models.Poll{}, newError(CodeInvalidPoll, fmt.Sprintf("at least %d options are required", MinOptions), nil)
	}
	if expiresIn <= 0 {
		return models.Poll{}, newError(CodeInvalidPoll, "expiry must be a positive duration", nil)
	}
	if expiresIn > MaxPollDuration {
		return models.Poll{}, newError(CodeInvalidPoll, "expiry is too far in the future", nil)
	}

	opts := make([]models.Option, 0, len(options))
	for i, text := range options {
		text = strings.TrimSpace(text)
		if text == "" {
			return models.Poll{}, newError(CodeInvalidPoll, fmt.Sprintf("option %d is empty", i), nil)
		}
		opts = append(opts, models.Option{Text: text})
	}

	// Stores keep millisecond precision
	createdAt := now.UTC().Truncate(time.Millisecond)
	p := models.Poll{
		ID:         uuid.NewString(),
		Question:   question,
		Options:    opts,
		VotersSeen: make(map[string]struct{}),
		ExpiresAt:  createdAt.Add(expiresIn).Truncate(time.Millisecond),
		CreatedAt:  createdAt,
	}

	if err := c.store.Create(ctx, p); err != nil {
		return models.Poll{}, newError(CodePersistence, "failed to create poll", err)
	}

	c.metrics.PollCreated()
	slog.Info("poll created", "poll_id", p.ID, "options", len(opts), "expires_at", p.ExpiresAt)
	return p, nil
}

// GetPoll loads a poll by ID.
func (c *Coordinator) GetPoll(ctx context.Context, pollID string) (models.Poll, error) {
	p, err := c.store.Get(ctx, pollID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Poll{}, ErrNotFound
		}
		return models.Poll{}, newError(CodePersistence, "failed to load poll", err)
	}
	return p, nil
}

// Results returns the final poll and its outcome. It fails with ErrPollOpen
// until the poll has expired.
func (c *Coordinator) Results(ctx context.Context, pollID string, now time.Time) (models.Poll, models.Outcome, error) {
	p, err := c.GetPoll(ctx, pollID)
	if err != nil {
		return models.Poll{}, models.Outcome{}, err
	}
	if IsOpen(p, now) {
		return models.Poll{}, models.Outcome{}, ErrPollOpen
	}
	return p, ComputeOutcome(p), nil
}

// SubmitVote admits one vote. Retrying a vote that was already applied yields
// ErrDuplicateVote, so the operation is idempotent per (pollID, voterToken).
func (c *Coordinator) SubmitVote(ctx context.Context, pollID string, optionIndex int, voterToken string, now time.Time) (models.Poll, error) {
	persisted, err := c.submitVote(ctx, pollID, optionIndex, voterToken, now)
	if err != nil {
		c.metrics.VoteResult(string(CodeOf(err)))
		return models.Poll{}, err
	}
	c.metrics.VoteResult(metrics.ResultAccepted)

	c.publisher.Publish(pollID, persisted)
	return persisted, nil
}

func (c *Coordinator) submitVote(ctx context.Context, pollID string, optionIndex int, voterToken string, now time.Time) (models.Poll, error) {
	current, err := c.GetPoll(ctx, pollID)
	if err != nil {
		return models.Poll{}, err
	}

	if !IsOpen(current, now) {
		return models.Poll{}, ErrPollClosed
	}

	// Validation only; TryApplyVote below is the write and applies the vote atomically
	if _, err := AdmitVote(current, optionIndex, voterToken); err != nil {
		return models.Poll{}, err
	}

	persisted, err := c.store.TryApplyVote(ctx, pollID, optionIndex, voterToken, now)
	switch {
	case err == nil:
		return persisted, nil
	case errors.Is(err, ErrAlreadyVoted):
		// Lost a race against another request with the same token
		return models.Poll{}, ErrDuplicateVote
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrPollClosed), errors.Is(err, ErrInvalidOption):
		return models.Poll{}, err
	default:
		slog.Error("failed to apply vote", "poll_id", pollID, "error", err)
		return models.Poll{}, newError(CodePersistence, "failed to record vote", err)
	}
}
