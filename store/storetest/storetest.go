// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Sonu99kr/Assignment/models"
	"github.com/Sonu99kr/Assignment/poll"
)

// Base is the reference time for polls created by the suite.
var Base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// Factory returns an empty store. It registers its own cleanup.
type Factory func(t *testing.T) poll.Store

func newPoll(expiresIn time.Duration, options ...string) models.Poll {
	p := models.Poll{
		ID:         uuid.NewString(),
		Question:   "Best editor?",
		VotersSeen: make(map[string]struct{}),
		CreatedAt:  Base,
		ExpiresAt:  Base.Add(expiresIn),
	}
	for _, text := range options {
		p.Options = append(p.Options, models.Option{Text: text})
	}
	return p
}

func mustCreate(t *testing.T, s poll.Store, p models.Poll) {
	t.Helper()
	if err := s.Create(context.Background(), p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

// Run exercises store against the poll.Store contract.
func Run(t *testing.T, newStore Factory) {
	t.Run("CreateAndGet", func(t *testing.T) { testCreateAndGet(t, newStore(t)) })
	t.Run("GetMissing", func(t *testing.T) { testGetMissing(t, newStore(t)) })
	t.Run("CreateConflict", func(t *testing.T) { testCreateConflict(t, newStore(t)) })
	t.Run("ApplyVote", func(t *testing.T) { testApplyVote(t, newStore(t)) })
	t.Run("ApplyVoteRejections", func(t *testing.T) { testApplyVoteRejections(t, newStore(t)) })
	t.Run("InvalidOptionLeavesNoTrace", func(t *testing.T) { testInvalidOptionLeavesNoTrace(t, newStore(t)) })
	t.Run("DeleteExpiredBefore", func(t *testing.T) { testDeleteExpiredBefore(t, newStore(t)) })
	t.Run("ConcurrentVoters", func(t *testing.T) { testConcurrentVoters(t, newStore(t)) })
	t.Run("ConcurrentSameToken", func(t *testing.T) { testConcurrentSameToken(t, newStore(t)) })
}

func testCreateAndGet(t *testing.T, s poll.Store) {
	p := newPoll(10*time.Minute, "Vim", "Emacs", "Nano")
	mustCreate(t, s, p)

	got, err := s.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != p.ID || got.Question != p.Question {
		t.Errorf("Get() = %s %q, want %s %q", got.ID, got.Question, p.ID, p.Question)
	}
	if len(got.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(got.Options))
	}
	for i, text := range []string{"Vim", "Emacs", "Nano"} {
		if got.Options[i].Text != text || got.Options[i].Votes != 0 {
			t.Errorf("option %d = %+v, want %q with 0 votes", i, got.Options[i], text)
		}
	}
	if !got.ExpiresAt.Equal(p.ExpiresAt) {
		t.Errorf("ExpiresAt = %s, want %s", got.ExpiresAt, p.ExpiresAt)
	}
	if !got.CreatedAt.Equal(p.CreatedAt) {
		t.Errorf("CreatedAt = %s, want %s", got.CreatedAt, p.CreatedAt)
	}
	if got.VoterCount() != 0 {
		t.Errorf("expected no voters, got %d", got.VoterCount())
	}
}

func testGetMissing(t *testing.T, s poll.Store) {
	_, err := s.Get(context.Background(), uuid.NewString())
	if !errors.Is(err, poll.ErrNotFound) {
		t.Errorf("Get() error = %v, want %v", err, poll.ErrNotFound)
	}
}

func testCreateConflict(t *testing.T, s poll.Store) {
	p := newPoll(time.Minute, "A", "B")
	mustCreate(t, s, p)

	if err := s.Create(context.Background(), p); !errors.Is(err, poll.ErrConflict) {
		t.Errorf("second Create() error = %v, want %v", err, poll.ErrConflict)
	}
}

func testApplyVote(t *testing.T, s poll.Store) {
	ctx := context.Background()
	p := newPoll(10*time.Minute, "Vim", "Emacs")
	mustCreate(t, s, p)

	got, err := s.TryApplyVote(ctx, p.ID, 1, "voter-1", Base.Add(time.Minute))
	if err != nil {
		t.Fatalf("TryApplyVote() error = %v", err)
	}
	if got.Options[0].Votes != 0 || got.Options[1].Votes != 1 {
		t.Errorf("counts = %d/%d, want 0/1", got.Options[0].Votes, got.Options[1].Votes)
	}
	if !got.HasVoted("voter-1") {
		t.Error("returned snapshot does not include the voter")
	}

	_, err = s.TryApplyVote(ctx, p.ID, 0, "voter-1", Base.Add(2*time.Minute))
	if !errors.Is(err, poll.ErrAlreadyVoted) {
		t.Fatalf("repeat TryApplyVote() error = %v, want %v", err, poll.ErrAlreadyVoted)
	}

	stored, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.TotalVotes() != 1 || stored.VoterCount() != 1 {
		t.Errorf("stored votes/voters = %d/%d, want 1/1", stored.TotalVotes(), stored.VoterCount())
	}
	if stored.Options[1].Votes != 1 {
		t.Errorf("repeat vote changed counts: %+v", stored.Options)
	}
}

func testApplyVoteRejections(t *testing.T, s poll.Store) {
	ctx := context.Background()
	p := newPoll(10*time.Minute, "Vim", "Emacs")
	mustCreate(t, s, p)

	tests := []struct {
		name        string
		pollID      string
		optionIndex int
		now         time.Time
		wantErr     error
	}{
		{"unknown poll", uuid.NewString(), 0, Base, poll.ErrNotFound},
		{"exactly at expiry", p.ID, 0, p.ExpiresAt, poll.ErrPollClosed},
		{"after expiry", p.ID, 0, p.ExpiresAt.Add(time.Second), poll.ErrPollClosed},
		{"option past end", p.ID, 2, Base, poll.ErrInvalidOption},
		{"negative option", p.ID, -1, Base, poll.ErrInvalidOption},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.TryApplyVote(ctx, tt.pollID, tt.optionIndex, fmt.Sprintf("voter-%d", i), tt.now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("TryApplyVote() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	stored, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.TotalVotes() != 0 || stored.VoterCount() != 0 {
		t.Errorf("rejected votes changed the poll: votes=%d voters=%d", stored.TotalVotes(), stored.VoterCount())
	}
}

func testInvalidOptionLeavesNoTrace(t *testing.T, s poll.Store) {
	ctx := context.Background()
	p := newPoll(10*time.Minute, "Vim", "Emacs")
	mustCreate(t, s, p)

	if _, err := s.TryApplyVote(ctx, p.ID, 7, "voter-1", Base); !errors.Is(err, poll.ErrInvalidOption) {
		t.Fatalf("TryApplyVote() error = %v, want %v", err, poll.ErrInvalidOption)
	}

	// The token was not consumed by the rejected vote
	got, err := s.TryApplyVote(ctx, p.ID, 0, "voter-1", Base)
	if err != nil {
		t.Fatalf("TryApplyVote() after rejection error = %v", err)
	}
	if got.Options[0].Votes != 1 || got.VoterCount() != 1 {
		t.Errorf("unexpected poll after vote: %+v voters=%d", got.Options, got.VoterCount())
	}
}

func testDeleteExpiredBefore(t *testing.T, s poll.Store) {
	ctx := context.Background()
	old := newPoll(time.Minute, "A", "B")
	edge := newPoll(time.Hour, "A", "B")
	live := newPoll(2*time.Hour, "A", "B")
	for _, p := range []models.Poll{old, edge, live} {
		mustCreate(t, s, p)
	}
	if _, err := s.TryApplyVote(ctx, old.ID, 0, "voter-1", Base); err != nil {
		t.Fatalf("TryApplyVote() error = %v", err)
	}

	n, err := s.DeleteExpiredBefore(ctx, Base.Add(time.Hour))
	if err != nil {
		t.Fatalf("DeleteExpiredBefore() error = %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteExpiredBefore() = %d, want 1", n)
	}

	if _, err := s.Get(ctx, old.ID); !errors.Is(err, poll.ErrNotFound) {
		t.Errorf("expired poll still present: %v", err)
	}
	// Expiry equal to the cutoff is kept
	for _, p := range []models.Poll{edge, live} {
		if _, err := s.Get(ctx, p.ID); err != nil {
			t.Errorf("poll %s removed too early: %v", p.ID, err)
		}
	}

	n, err = s.DeleteExpiredBefore(ctx, Base.Add(time.Hour))
	if err != nil {
		t.Fatalf("second DeleteExpiredBefore() error = %v", err)
	}
	if n != 0 {
		t.Errorf("second DeleteExpiredBefore() = %d, want 0", n)
	}
}

func testConcurrentVoters(t *testing.T, s poll.Store) {
	ctx := context.Background()
	p := newPoll(10*time.Minute, "Vim", "Emacs", "Nano")
	mustCreate(t, s, p)

	const voters = 30
	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.TryApplyVote(ctx, p.ID, i%3, fmt.Sprintf("voter-%d", i), Base)
			if err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("TryApplyVote() error = %v", err)
	}

	stored, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	for i, opt := range stored.Options {
		if opt.Votes != voters/3 {
			t.Errorf("option %d votes = %d, want %d", i, opt.Votes, voters/3)
		}
	}
	if stored.TotalVotes() != voters || stored.VoterCount() != voters {
		t.Errorf("votes/voters = %d/%d, want %d/%d", stored.TotalVotes(), stored.VoterCount(), voters, voters)
	}
}

func testConcurrentSameToken(t *testing.T, s poll.Store) {
	ctx := context.Background()
	p := newPoll(10*time.Minute, "Vim", "Emacs")
	mustCreate(t, s, p)

	const attempts = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
		other    []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.TryApplyVote(ctx, p.ID, i%2, "same-voter", Base)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, poll.ErrAlreadyVoted):
				rejected++
			default:
				other = append(other, err)
			}
		}(i)
	}
	wg.Wait()

	if len(other) > 0 {
		t.Fatalf("unexpected errors: %v", other)
	}
	if accepted != 1 || rejected != attempts-1 {
		t.Errorf("accepted=%d rejected=%d, want 1 and %d", accepted, rejected, attempts-1)
	}

	stored, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.TotalVotes() != 1 || stored.VoterCount() != 1 {
		t.Errorf("votes/voters = %d/%d, want 1/1", stored.TotalVotes(), stored.VoterCount())
	}
}
