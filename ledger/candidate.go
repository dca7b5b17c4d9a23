// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
)

// InitializeCandidate registers candidateName under an existing poll and
// bumps the poll's candidate_amount in the same unit of work. It returns the
// new candidate and the updated poll.
func (l *Ledger) InitializeCandidate(ctx context.Context, pollID uint64, candidateName string) (models.Candidate, models.Poll, error) {
	cand, poll, err := l.initializeCandidate(ctx, pollID, candidateName)
	l.logOutcome("candidate initialize", err,
		"poll_id", pollID,
		"candidate_name", candidateName,
		"candidate_amount", poll.CandidateAmount,
	)
	return cand, poll, err
}

func (l *Ledger) initializeCandidate(ctx context.Context, pollID uint64, candidateName string) (models.Candidate, models.Poll, error) {
	cand := models.Candidate{CandidateName: candidateName}
	pollAddr := l.PollAddress(pollID)
	candAddr := l.CandidateAddress(pollID, candidateName)

	entry := l.entry(models.OpInitializeCandidate, pollID)
	entry.CandidateName = candidateName

	var poll models.Poll
	err := l.store.Atomically(ctx, func(tx store.Tx) error {
		if _, err := readPoll(tx, pollAddr); err != nil {
			return err
		}
		if len(candidateName) > models.MaxCandidateNameLen {
			return ErrNameTooLong
		}

		data, err := cand.MarshalBinary()
		if err != nil {
			return err
		}
		if err := tx.Create(candAddr, data, models.CandidateSpace); err != nil {
			return err
		}

		poll, err = updatePoll(tx, pollAddr, func(p *models.Poll) error {
			p.CandidateAmount++
			return nil
		})
		if err != nil {
			return err
		}
		return tx.Append(entry)
	})
	if err != nil {
		return models.Candidate{}, models.Poll{}, err
	}
	return cand, poll, nil
}

// GetCandidate reads the candidate record for (pollID, candidateName)
func (l *Ledger) GetCandidate(ctx context.Context, pollID uint64, candidateName string) (models.Candidate, error) {
	addr := l.CandidateAddress(pollID, candidateName)
	rec, err := l.store.Read(ctx, addr)
	return decodeCandidate(addr, rec, err)
}
