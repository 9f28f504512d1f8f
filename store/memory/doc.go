// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package memory implements poll.Store on an in-process go-memdb database.

Data lives for the lifetime of the process. Writes run in memdb write
transactions, which admit one writer at a time; reads see immutable
snapshots and never wait.
*/
package memory
