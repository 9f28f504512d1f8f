// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on PostgreSQL and SQLite.

# Tables

  - poll: question, expires_at, created_at (unix milliseconds)
  - poll_option: ordered options with their vote counters
  - poll_voter: voter tokens that have voted, keyed by (poll_id, voter_token)

# Relationships

	poll 1──* poll_option
	poll 1──* poll_voter

All foreign keys use ON DELETE CASCADE.

# Invariant

For every poll, SUM(poll_option.votes) equals COUNT(poll_voter). The vote
write inserts the voter row and increments the counter in one transaction.
*/
package db
