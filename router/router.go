// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sonu99kr/Assignment/broadcast"
	"github.com/Sonu99kr/Assignment/cliparse"
	"github.com/Sonu99kr/Assignment/handlers"
	"github.com/Sonu99kr/Assignment/middleware"
	"github.com/Sonu99kr/Assignment/poll"
)

// Deps are the long-lived services the routes run on. Nil Limiter, Clock and
// Gatherer fall back to defaults built from cfg.
type Deps struct {
	Coordinator *poll.Coordinator
	Hub         *broadcast.Hub
	Limiter     *middleware.RateLimiter
	Clock       poll.Clock
	Gatherer    prometheus.Gatherer
}

func NewRouter(deps Deps, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	if deps.Clock == nil {
		deps.Clock = poll.SystemClock
	}
	if deps.Limiter == nil {
		deps.Limiter = middleware.NewRateLimiter(cfg.VoteRateLimit, cfg.VoteRateBurst, cfg.IPHashSalt)
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(deps.Coordinator, deps.Clock)
	resultsHandler := handlers.NewResultsHandler(deps.Coordinator, deps.Clock)
	votingHandler := handlers.NewVotingHandler(deps.Coordinator, deps.Clock, cfg.VoteRetryTries)
	liveHandler := handlers.NewLiveHandler(deps.Coordinator, deps.Hub, deps.Clock, cfg.AllowedOrigin)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))

	// Polls
	mux.HandleFunc("POST /api/polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /api/polls/{id}", middleware.WithLogging(resultsHandler.GetPoll))
	mux.HandleFunc("GET /api/polls/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Voting (rate limited per client)
	mux.HandleFunc("POST /api/polls/{id}/vote", middleware.WithLogging(deps.Limiter.Limit(votingHandler.SubmitVote)))
	mux.HandleFunc("POST /api/voter-tokens", middleware.WithLogging(votingHandler.IssueVoterToken))

	// Live updates
	mux.HandleFunc("GET /api/live", middleware.WithLogging(liveHandler.Live))
	mux.HandleFunc("GET /api/polls/{id}/live", middleware.WithLogging(liveHandler.Live))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			middleware.CodedErrorResponse(w, http.StatusNotFound, middleware.CodeInvalidRequest, "Unknown route")
			return
		}
		w.Write([]byte("livepoll API v1"))
	})

	return mux
}
