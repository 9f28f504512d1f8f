// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the live poll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(router.Deps{
		Coordinator: coord,
		Hub:         hub,
		Limiter:     limiter,
		Gatherer:    reg,
	}, cfg)

Coordinator and Hub are required. A nil Limiter is built from cfg, a nil
Clock is the system clock and a nil Gatherer is the default Prometheus one.

# Endpoints

Operations:

	GET /health  - Liveness
	GET /metrics - Prometheus metrics

Polls:

	POST /api/polls               - Create a poll
	GET  /api/polls/{id}          - Poll view; has_voted with X-Voter-Token
	GET  /api/polls/{id}/results  - Final outcome (closed polls only)
	POST /api/polls/{id}/vote     - Cast a vote (rate limited per client)
	POST /api/voter-tokens        - Issue a voter token

Live updates (websocket):

	GET /api/polls/{id}/live - Joins poll {id} on connect
	GET /api/live?poll={id}  - Optional poll on connect; poll.join frames for more

GET / answers with a banner; any other unknown path returns 404.
*/
package router
