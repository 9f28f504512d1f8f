// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the live poll API server.

Anyone can create a poll with a question, a few options and a lifetime. Voters
pick one option each, once per poll, until the poll expires. Everyone watching
a poll sees the counts change as votes land, over a websocket.

# Starting the Server

With no configuration the server uses a SQLite file in the working directory:

	go run .

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

Or with flags:

	go run . -p 3318 -t memory

# Configuration

Settings come from struct defaults, then the environment (and a .env file),
then CLI flags. See package cliparse for the full list.

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): postgres, sqlite or memory (default: sqlite)
  - DATABASE_URL (-d): PostgreSQL connection string or SQLite path
  - POLL_RETENTION (-retention): How long closed polls are kept (default: 24h)
  - VOTE_RATE_LIMIT / VOTE_RATE_BURST: Votes per minute per client (default: 10)

# Architecture

  - poll: Vote admission, expiry, outcome and the vote coordinator
  - broadcast: Per-poll live subscriber groups and fan-out
  - store/sqlstore, store/postgres, store/sqlite, store/memory: Poll storage
  - handlers: HTTP and websocket handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, rate limiting, JSON helpers
  - janitor: Retention sweeps
  - metrics: Prometheus collectors
  - models: Domain, request and response types
  - auth: Voter tokens and IP hashing
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
