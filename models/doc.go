// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines ledger records, their binary layout, and API types.

# Records

Two record types live in the store:

  - Poll: poll_id, description, poll_start, poll_end, candidate_amount,
    total_votes, voters
  - Candidate: candidate_name, candidate_votes

Each encodes as an 8-byte discriminator followed by little-endian fields.
Bounded text is a u32 length plus raw bytes; the voter set is a u32 count
plus 32-byte identities.

	data, err := poll.MarshalBinary()
	err = poll.UnmarshalBinary(data)

# Space

Records are allocated once at their maximum size:

	PollSpace      = 32256 // 1000 voters
	CandidateSpace = 52

# Limits

	MaxDescriptionLen   = 200
	MaxCandidateNameLen = 32
	MaxVoters           = 1000

# Request and Response Types

  - InitializePollRequest / InitializePollResponse
  - InitializeCandidateRequest / InitializeCandidateResponse
  - VoteRequest / VoteResponse
  - PollView, CandidateView, PollResults, HistoryResponse
  - ErrorResponse: error, code, message

# Journal

LedgerEntry is one accepted transition. Op is one of OpInitializePoll,
OpInitializeCandidate, or OpVote.
*/
package models
