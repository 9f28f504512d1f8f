// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"errors"
	"testing"
	"time"

	"github.com/Sonu99kr/Assignment/models"
)

func newTestPoll(votes ...int) models.Poll {
	texts := []string{"Cats", "Dogs", "Birds", "Fish"}
	p := models.Poll{
		ID:         "poll-1",
		Question:   "Cats or dogs?",
		VotersSeen: make(map[string]struct{}),
		CreatedAt:  time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		ExpiresAt:  time.Date(2026, 1, 1, 12, 10, 0, 0, time.UTC),
	}
	for i, v := range votes {
		p.Options = append(p.Options, models.Option{Text: texts[i], Votes: v})
	}
	return p
}

func TestAdmitVote(t *testing.T) {
	tests := []struct {
		name        string
		optionIndex int
		voterToken  string
		seen        []string
		wantErr     error
		wantCounts  []int
	}{
		{
			name:        "valid vote",
			optionIndex: 1,
			voterToken:  "v1",
			wantCounts:  []int{0, 1},
		},
		{
			name:        "first option",
			optionIndex: 0,
			voterToken:  "v2",
			seen:        []string{"v1"},
			wantCounts:  []int{1, 0},
		},
		{
			name:        "index past end",
			optionIndex: 5,
			voterToken:  "v1",
			wantErr:     ErrInvalidOption,
		},
		{
			name:        "negative index",
			optionIndex: -1,
			voterToken:  "v1",
			wantErr:     ErrInvalidOption,
		},
		{
			name:        "empty voter token",
			optionIndex: 0,
			voterToken:  "",
			wantErr:     ErrMissingVoter,
		},
		{
			name:        "duplicate voter",
			optionIndex: 0,
			voterToken:  "v1",
			seen:        []string{"v1"},
			wantErr:     ErrDuplicateVote,
		},
		{
			name:        "invalid option checked before missing voter",
			optionIndex: 9,
			voterToken:  "",
			wantErr:     ErrInvalidOption,
		},
		{
			name:        "missing voter checked before duplicate",
			optionIndex: 0,
			voterToken:  "",
			seen:        []string{""},
			wantErr:     ErrMissingVoter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPoll(0, 0)
			for _, token := range tt.seen {
				p.VotersSeen[token] = struct{}{}
			}

			next, err := AdmitVote(p, tt.optionIndex, tt.voterToken)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("AdmitVote() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AdmitVote() unexpected error: %v", err)
			}

			for i, want := range tt.wantCounts {
				if next.Options[i].Votes != want {
					t.Errorf("option %d votes = %d, want %d", i, next.Options[i].Votes, want)
				}
			}
			if !next.HasVoted(tt.voterToken) {
				t.Error("voter token was not recorded")
			}
			if next.TotalVotes() != next.VoterCount() {
				t.Errorf("total votes %d != voters %d", next.TotalVotes(), next.VoterCount())
			}
		})
	}
}

func TestAdmitVoteDoesNotMutateInput(t *testing.T) {
	p := newTestPoll(0, 0)

	next, err := AdmitVote(p, 1, "v1")
	if err != nil {
		t.Fatalf("AdmitVote() error = %v", err)
	}

	if p.Options[1].Votes != 0 {
		t.Errorf("input poll counts changed: %v", p.Options)
	}
	if p.HasVoted("v1") {
		t.Error("input poll voter set changed")
	}
	if next.Options[1].Votes != 1 {
		t.Errorf("expected updated count 1, got %d", next.Options[1].Votes)
	}
}

func TestAdmitVoteRejectsRepeatOnAnyOption(t *testing.T) {
	p := newTestPoll(0, 0)
	p, err := AdmitVote(p, 1, "v1")
	if err != nil {
		t.Fatalf("first vote: %v", err)
	}

	for idx := range p.Options {
		if _, err := AdmitVote(p, idx, "v1"); !errors.Is(err, ErrDuplicateVote) {
			t.Errorf("repeat vote on option %d: error = %v, want %v", idx, err, ErrDuplicateVote)
		}
	}
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		err       error
		code      Code
		retryable bool
	}{
		{ErrNotFound, CodeNotFound, false},
		{ErrPollClosed, CodePollClosed, false},
		{ErrInvalidOption, CodeInvalidOption, false},
		{ErrMissingVoter, CodeMissingVoter, false},
		{ErrDuplicateVote, CodeDuplicateVote, false},
		{newError(CodePersistence, "write failed", errors.New("disk full")), CodePersistence, true},
		{errors.New("plain"), CodeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.code {
				t.Errorf("CodeOf() = %s, want %s", got, tt.code)
			}
			if got := Retryable(tt.err); got != tt.retryable {
				t.Errorf("Retryable() = %v, want %v", got, tt.retryable)
			}
		})
	}

	cause := errors.New("disk full")
	wrapped := newError(CodePersistence, "write failed", cause)
	if !errors.Is(wrapped, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
	if !errors.Is(wrapped, ErrPersistence) {
		t.Error("expected code match against ErrPersistence")
	}
}
