// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and client identity helpers.

# Voter Tokens

Voter tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateVoterToken()

Tokens are URL-safe base64 encoded. The server hands them out from
POST /api/voter-tokens but accepts any opaque token a client supplies, as
long as it passes CheckVoterToken. A token may vote once per poll.

# ID Generation

Random hex IDs, used for the per-process IP hash salt:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

Rate limiting keys clients by a salted hash so raw addresses are never held:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
