// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
)

// VoteResult is the state of both records after an accepted vote.
type VoteResult struct {
	Poll      models.Poll
	Candidate models.Candidate
	EntryID   string
}

// Vote records voter's vote for candidateName in pollID at logical time now.
//
// The whole check-and-apply sequence is one unit of work:
//
//  1. the poll must exist
//  2. voter must not be in the poll's voter set
//  3. poll_start <= now <= poll_end
//  4. the candidate must exist
//  5. voter is added, total_votes and candidate_votes are incremented
//
// A rejected vote changes nothing. There is no closed state; a poll stops
// accepting votes once now passes poll_end.
func (l *Ledger) Vote(ctx context.Context, pollID uint64, candidateName string, voter models.Identity, now uint64) (VoteResult, error) {
	res, err := l.vote(ctx, pollID, candidateName, voter, now)
	l.logOutcome("vote", err,
		"poll_id", pollID,
		"candidate_name", candidateName,
		"voter", voter.String(),
		"now", now,
		"total_votes", res.Poll.TotalVotes,
	)
	return res, err
}

func (l *Ledger) vote(ctx context.Context, pollID uint64, candidateName string, voter models.Identity, now uint64) (VoteResult, error) {
	pollAddr := l.PollAddress(pollID)
	candAddr := l.CandidateAddress(pollID, candidateName)

	entry := l.entry(models.OpVote, pollID)
	entry.CandidateName = candidateName
	entry.Voter = voter.String()
	entry.LogicalTime = now

	var res VoteResult
	err := l.store.Atomically(ctx, func(tx store.Tx) error {
		poll, err := readPoll(tx, pollAddr)
		if err != nil {
			return err
		}
		if poll.HasVoted(voter) {
			return ErrAlreadyVoted
		}
		if !poll.InWindow(now) {
			return ErrInvalidVoteTime
		}
		if _, err := readCandidate(tx, candAddr); err != nil {
			return err
		}

		res.Poll, err = updatePoll(tx, pollAddr, func(p *models.Poll) error {
			// re-checked against the bytes being replaced
			if p.HasVoted(voter) {
				return ErrAlreadyVoted
			}
			if err := p.AddVoter(voter); err != nil {
				return err
			}
			p.TotalVotes++
			return nil
		})
		if err != nil {
			return err
		}

		res.Candidate, err = updateCandidate(tx, candAddr, func(c *models.Candidate) {
			c.CandidateVotes++
		})
		if err != nil {
			return err
		}
		return tx.Append(entry)
	})
	if err != nil {
		return VoteResult{}, err
	}

	res.EntryID = entry.ID
	return res, nil
}
