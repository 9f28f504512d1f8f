// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sonu99kr/Assignment/models"
	"github.com/Sonu99kr/Assignment/poll"
	"github.com/Sonu99kr/Assignment/testutil"
)

func getPoll(env *testEnv, pollID, voterToken string) *httptest.ResponseRecorder {
	headers := map[string]string{}
	if voterToken != "" {
		headers["X-Voter-Token"] = voterToken
	}
	req := testutil.MakeRequest("GET", "/api/polls/"+pollID, nil, headers)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()
	env.results.GetPoll(w, req)
	return w
}

func getResults(env *testEnv, pollID string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("GET", "/api/polls/"+pollID+"/results", nil, nil)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()
	env.results.GetResults(w, req)
	return w
}

func TestGetPoll(t *testing.T) {
	env := newTestEnv(t)
	p := env.createPoll(t)
	testutil.CastTestVote(t, env.store, p.ID, 1, "voter-1", env.clock.Now())

	t.Run("without voter token", func(t *testing.T) {
		w := getPoll(env, p.ID, "")
		testutil.AssertStatus(t, w, http.StatusOK)

		var view models.PollView
		testutil.AssertJSON(t, w, &view)

		if view.Status != models.StatusOpen {
			t.Errorf("Expected open, got %s", view.Status)
		}
		if view.Options[0].Votes != 0 || view.Options[1].Votes != 1 {
			t.Errorf("Expected counts [0 1], got %+v", view.Options)
		}
		if view.VoterCount != 1 || view.TotalVotes != 1 {
			t.Errorf("Expected 1 voter and 1 vote, got %d/%d", view.VoterCount, view.TotalVotes)
		}
		if view.HasVoted != nil {
			t.Error("Expected has_voted omitted without a token")
		}
	})

	t.Run("voter who voted", func(t *testing.T) {
		w := getPoll(env, p.ID, "voter-1")
		var view models.PollView
		testutil.AssertJSON(t, w, &view)

		if view.HasVoted == nil || !*view.HasVoted {
			t.Error("Expected has_voted true")
		}
	})

	t.Run("voter who has not voted", func(t *testing.T) {
		w := getPoll(env, p.ID, "voter-2")
		var view models.PollView
		testutil.AssertJSON(t, w, &view)

		if view.HasVoted == nil || *view.HasVoted {
			t.Error("Expected has_voted false")
		}
	})

	t.Run("unknown poll", func(t *testing.T) {
		w := getPoll(env, "missing", "")
		testutil.AssertStatus(t, w, http.StatusNotFound)
		testutil.AssertErrorCode(t, w, poll.CodeNotFound)
	})
}

func TestGetPoll_ClosedShowsOutcome(t *testing.T) {
	env := newTestEnv(t)
	p := env.createPoll(t)

	// Scenario: tie at close
	now := env.clock.Now()
	testutil.CastTestVote(t, env.store, p.ID, 0, "v1", now)
	testutil.CastTestVote(t, env.store, p.ID, 0, "v2", now)
	testutil.CastTestVote(t, env.store, p.ID, 1, "v3", now)
	testutil.CastTestVote(t, env.store, p.ID, 1, "v4", now)

	env.clock.Advance(10 * time.Minute)

	w := getPoll(env, p.ID, "")
	testutil.AssertStatus(t, w, http.StatusOK)

	var view models.PollView
	testutil.AssertJSON(t, w, &view)

	if view.Status != models.StatusClosed {
		t.Errorf("Expected closed, got %s", view.Status)
	}
	if view.ClosesIn != "" {
		t.Errorf("Expected no closes_in for a closed poll, got %q", view.ClosesIn)
	}
	if view.Outcome == nil {
		t.Fatal("Expected an outcome for a closed poll")
	}
	if view.Outcome.Kind != models.OutcomeTie {
		t.Errorf("Expected tie, got %s", view.Outcome.Kind)
	}
	if len(view.Outcome.Winners) != 2 || view.Outcome.Winners[0] != "Cats" || view.Outcome.Winners[1] != "Dogs" {
		t.Errorf("Expected winners [Cats Dogs], got %v", view.Outcome.Winners)
	}
}

func TestGetResults(t *testing.T) {
	env := newTestEnv(t)

	t.Run("open poll is sealed", func(t *testing.T) {
		p := env.createPoll(t)
		w := getResults(env, p.ID)
		testutil.AssertStatus(t, w, http.StatusConflict)
		testutil.AssertErrorCode(t, w, poll.CodePollOpen)
	})

	t.Run("unknown poll", func(t *testing.T) {
		w := getResults(env, "missing")
		testutil.AssertStatus(t, w, http.StatusNotFound)
		testutil.AssertErrorCode(t, w, poll.CodeNotFound)
	})
}

func TestGetResults_Closed(t *testing.T) {
	tests := []struct {
		name        string
		votes       []int // option index per voter
		wantKind    string
		wantWinners []string
	}{
		{"no votes", nil, models.OutcomeNoVotes, nil},
		{"single winner", []int{1, 1, 0}, models.OutcomeWinner, []string{"Dogs"}},
		{"tie", []int{0, 1}, models.OutcomeTie, []string{"Cats", "Dogs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			p := env.createPoll(t)
			for i, idx := range tt.votes {
				testutil.CastTestVote(t, env.store, p.ID, idx, "voter-"+string(rune('a'+i)), env.clock.Now())
			}

			env.clock.Advance(10 * time.Minute)

			w := getResults(env, p.ID)
			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.ResultsResponse
			testutil.AssertJSON(t, w, &resp)

			if resp.PollID != p.ID {
				t.Errorf("Expected poll_id %s, got %s", p.ID, resp.PollID)
			}
			if resp.TotalVotes != len(tt.votes) {
				t.Errorf("Expected %d total votes, got %d", len(tt.votes), resp.TotalVotes)
			}
			if resp.Outcome.Kind != tt.wantKind {
				t.Errorf("Expected outcome %s, got %s", tt.wantKind, resp.Outcome.Kind)
			}
			if len(resp.Outcome.Winners) != len(tt.wantWinners) {
				t.Fatalf("Expected winners %v, got %v", tt.wantWinners, resp.Outcome.Winners)
			}
			for i := range tt.wantWinners {
				if resp.Outcome.Winners[i] != tt.wantWinners[i] {
					t.Errorf("Expected winners %v, got %v", tt.wantWinners, resp.Outcome.Winners)
				}
			}
		})
	}
}
