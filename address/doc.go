// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package address derives deterministic record addresses.

An address is the SHA-256 digest of a namespace followed by an ordered list of
seeds. Each element is length-prefixed before hashing:

	addr := address.Derive([]byte("quickly-vote"), address.PollSeed(1))

Polls and candidates use fixed seed shapes:

	address.Poll(ns, pollID)                 // [poll_id LE8]
	address.Candidate(ns, pollID, "Alice")   // [poll_id LE8, "Alice"]

The same candidate name under two polls yields two distinct addresses.
*/
package address
