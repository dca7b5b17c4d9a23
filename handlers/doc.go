// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Vote API.

# Handler Types

Each handler is a struct with ledger and config dependencies:

  - PollHandler: Poll initialization and lookup
  - CandidateHandler: Candidate registration and lookup
  - VotingHandler: Vote submission
  - ResultsHandler: Tallies and journal history

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(l, ledger.SystemClock{})

Handlers that check the vote window take a ledger.Clock. The server uses
unix seconds; tests pass a ledger.FixedClock.

# Poll Lifecycle

	POST /polls                           → InitializePoll
	GET  /polls/{id}                      → GetPoll
	POST /polls/{id}/candidates           → InitializeCandidate
	GET  /polls/{id}/candidates/{name}    → GetCandidate

Poll IDs are unsigned 64-bit integers chosen by the caller. There is no
publish or close step. A poll takes votes while poll_start <= now <= poll_end.

# Voting

	POST /polls/{id}/votes → Vote

The voter is identified by an EdDSA voter token in the Authorization header.
The token's subject is the voter's public key, and that key is what the ledger
records in the poll's voter set.

# Results

	GET /polls/{id}/results → GetResults (live tallies with a consistency flag)
	GET /polls/{id}/history → GetHistory (accepted transitions in commit order)

# Error Responses

Ledger errors go through middleware.LedgerError, which picks the status from
the error kind and includes a stable code:

	{"error": "Conflict", "code": "already_voted", "message": "voter has already voted"}
*/
package handlers
