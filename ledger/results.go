// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
)

// Results tallies every candidate of pollID from one consistent read.
// Candidates are found through the journal's registration entries, in
// registration order.
func (l *Ledger) Results(ctx context.Context, pollID uint64) (models.PollResults, error) {
	var out models.PollResults
	err := l.store.Atomically(ctx, func(tx store.Tx) error {
		poll, err := readPoll(tx, l.PollAddress(pollID))
		if err != nil {
			return err
		}
		entries, err := tx.Entries(pollID)
		if err != nil {
			return err
		}

		out = models.PollResults{
			PollID:     pollID,
			TotalVotes: poll.TotalVotes,
			VoterCount: len(poll.Voters),
			Candidates: []models.CandidateTally{},
		}
		var sum uint64
		for _, e := range entries {
			if e.Op != models.OpInitializeCandidate {
				continue
			}
			cand, err := readCandidate(tx, l.CandidateAddress(pollID, e.CandidateName))
			if err != nil {
				return err
			}
			sum += cand.CandidateVotes
			out.Candidates = append(out.Candidates, models.CandidateTally{
				CandidateName:  cand.CandidateName,
				CandidateVotes: cand.CandidateVotes,
			})
		}

		out.Consistent = sum == poll.TotalVotes &&
			poll.TotalVotes == uint64(len(poll.Voters)) &&
			uint64(len(out.Candidates)) == poll.CandidateAmount
		return nil
	})
	if err != nil {
		return models.PollResults{}, err
	}

	if !out.Consistent {
		l.logger.Error("poll tally inconsistent",
			"poll_id", pollID,
			"total_votes", out.TotalVotes,
			"voter_count", out.VoterCount,
		)
	}
	return out, nil
}

// History returns the accepted transitions for pollID in commit order.
// Polls are never removed and the journal only grows, so the existence check
// and the listing need not share a unit.
func (l *Ledger) History(ctx context.Context, pollID uint64) ([]models.LedgerEntry, error) {
	if _, err := l.GetPoll(ctx, pollID); err != nil {
		return nil, err
	}
	return l.store.Entries(ctx, pollID)
}
