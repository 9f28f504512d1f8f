// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sqlite opens a SQLite-backed poll store.

	store, err := sqlite.Open(ctx, "polls.db")
	store, err := sqlite.Open(ctx, sqlite.MemoryPath)

File databases use WAL mode and a small connection pool, so reads never wait
for a vote in progress. SQLite has one writer per database: concurrent votes
queue on its lock (busy timeout five seconds) whatever poll they target. Use
the postgres store when votes on different polls must not wait on each other.

An in-memory database lives on a single connection and is gone on Close.
*/
package sqlite
