// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package janitor deletes polls once their retention window has passed and
trims idle rate limiter state.

# Running

	j := janitor.New(store, limiter, poll.SystemClock, cfg.PollRetention, cfg.JanitorInterval, m)
	go j.Run(ctx)

Run sweeps once per interval until ctx is cancelled. Sweep can be called
directly; it returns how many polls were deleted.

# Retention

A poll is deleted when its expiry is more than the retention window in the
past. A retention of zero keeps polls forever; limiter pruning still runs.
Deleted polls are counted in poll_deleted_total.
*/
package janitor
