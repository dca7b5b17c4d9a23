// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
)

var (
	ErrPollEndInThePast        = errors.New("poll end timestamp must be in the future")
	ErrInvalidPollEndTimestamp = errors.New("poll end timestamp is invalid")
	ErrDescriptionTooLong      = errors.New("description exceeds 200 bytes")
	ErrNameTooLong             = errors.New("candidate name exceeds 32 bytes")

	ErrPollNotFound      = errors.New("poll not found")
	ErrCandidateNotFound = errors.New("candidate not found")

	ErrAlreadyVoted          = errors.New("voter has already voted")
	ErrInvalidVoteTime       = errors.New("voting is not allowed at this time")
	ErrAddressOccupied       = store.ErrAddressOccupied
	ErrVoterCapacityExceeded = models.ErrVoterCapacityExceeded

	ErrConflict = store.ErrConflict
)

// ErrorKind groups ledger errors by how a caller should react.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	// KindRetry means the unit lost a race and may be resubmitted unchanged.
	KindRetry
)

var taxonomy = []struct {
	err  error
	code string
	kind ErrorKind
}{
	{ErrPollEndInThePast, "poll_end_in_the_past", KindValidation},
	{ErrInvalidPollEndTimestamp, "invalid_poll_end_timestamp", KindValidation},
	{ErrDescriptionTooLong, "description_too_long", KindValidation},
	{ErrNameTooLong, "name_too_long", KindValidation},
	{ErrPollNotFound, "poll_not_found", KindNotFound},
	{ErrCandidateNotFound, "candidate_not_found", KindNotFound},
	{ErrAddressOccupied, "address_occupied", KindConflict},
	{ErrAlreadyVoted, "already_voted", KindConflict},
	{ErrInvalidVoteTime, "invalid_vote_time", KindConflict},
	{ErrVoterCapacityExceeded, "voter_capacity_exceeded", KindConflict},
	{ErrConflict, "conflict", KindRetry},
}

// Kind classifies err. Unknown errors are KindInternal.
func Kind(err error) ErrorKind {
	for _, t := range taxonomy {
		if errors.Is(err, t.err) {
			return t.kind
		}
	}
	return KindInternal
}

// Code returns a stable machine-readable code for err, or "internal".
func Code(err error) string {
	for _, t := range taxonomy {
		if errors.Is(err, t.err) {
			return t.code
		}
	}
	return "internal"
}
