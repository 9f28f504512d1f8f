// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs completion with method, path, status and duration_ms. The wrapped
writer still supports hijacking, so websocket handlers can be logged too.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigin)(mux),
	}

An empty origin reflects the request's Origin header. Allows methods GET,
POST, OPTIONS with headers Content-Type and X-Voter-Token.

# Rate Limiting

Per-client token buckets keyed by auth.HashIP of the client address:

	limiter := middleware.NewRateLimiter(10, 10, cfg.IPHashSalt)
	mux.HandleFunc("POST /api/polls/{id}/vote", limiter.Limit(handler))

Refused requests get 429 with code RATE_LIMITED and a Retry-After header.
Prune drops idle clients; the janitor calls it on every sweep.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.CodedErrorResponse(w, http.StatusConflict, "POLL_CLOSED", "message")

Parse JSON request bodies (capped at MaxBodyBytes):

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
