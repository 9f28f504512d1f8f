// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sqlstore implements poll.Store on database/sql for PostgreSQL and SQLite.

Queries are written with ? placeholders and rewritten to $n for PostgreSQL.
Timestamps are stored as unix milliseconds.

# Votes

TryApplyVote is one transaction that opens with a conditional insert of the
voter row: it writes nothing when the poll is missing or closed, or when the
token already voted. The option counter is then incremented; an unknown
option rolls the voter row back.
*/
package sqlstore
