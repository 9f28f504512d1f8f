// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Sources

Settings are resolved in three layers, later layers winning:

 1. Defaults declared in the Config struct tags
 2. Environment variables, including a .env file in the working directory
 3. CLI flags

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: postgres, sqlite or memory (default: sqlite)
  - DatabaseURL: PostgreSQL connection string or SQLite file path
  - AllowedOrigin: CORS origin; empty reflects the request origin
  - LogFormat: text or json
  - IPHashSalt: Salt for rate limit keys (random when unset)
  - VoteRateLimit / VoteRateBurst: Votes per minute per client (default: 10/10)
  - VoteRetryTries: Attempts for a vote that hits a storage error (default: 3)
  - EventBuffer / SubscriberBuffer: Live update queue sizes
  - PollRetention: How long closed polls are kept (default: 24h, 0 = forever)
  - JanitorInterval: How often expired polls are swept (default: 1m)

# CLI Flags

	-p            Server port
	-d            Database URL or SQLite path
	-t            Database type
	-origin       Allowed CORS origin
	-retention    Poll retention
	-vote-rate    Votes per minute per client
	-vote-burst   Vote burst per client
	-log-format   Log format

# Environment Variables

	PORT, DATABASE_TYPE, DATABASE_URL, ALLOWED_ORIGIN, LOG_FORMAT,
	IP_HASH_SALT, VOTE_RATE_LIMIT, VOTE_RATE_BURST, VOTE_RETRY_TRIES,
	BROADCAST_EVENT_BUFFER, BROADCAST_SUBSCRIBER_BUFFER,
	POLL_RETENTION, JANITOR_INTERVAL

# Validation

ParseFlags returns an error when:

  - DATABASE_URL is missing for postgres
  - the database type is unknown
  - the port or vote rate settings are out of range
*/
package cliparse
