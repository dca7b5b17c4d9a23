// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
)

// InitializePoll creates the poll record for req.PollID.
// Checks run in order: poll_end after now, poll_end above the sanity floor,
// description length, then address occupancy. poll_start is not compared
// with poll_end.
func (l *Ledger) InitializePoll(ctx context.Context, req models.InitializePollRequest, now uint64) (models.Poll, error) {
	poll, err := l.initializePoll(ctx, req, now)
	l.logOutcome("poll initialize", err,
		"poll_id", req.PollID,
		"poll_start", req.PollStart,
		"poll_end", req.PollEnd,
		"now", now,
	)
	return poll, err
}

func (l *Ledger) initializePoll(ctx context.Context, req models.InitializePollRequest, now uint64) (models.Poll, error) {
	if req.PollEnd <= now {
		return models.Poll{}, ErrPollEndInThePast
	}
	if req.PollEnd <= l.floor {
		return models.Poll{}, ErrInvalidPollEndTimestamp
	}
	if len(req.Description) > models.MaxDescriptionLen {
		return models.Poll{}, ErrDescriptionTooLong
	}

	poll := models.Poll{
		PollID:      req.PollID,
		Description: req.Description,
		PollStart:   req.PollStart,
		PollEnd:     req.PollEnd,
	}
	data, err := poll.MarshalBinary()
	if err != nil {
		return models.Poll{}, err
	}

	entry := l.entry(models.OpInitializePoll, req.PollID)
	entry.LogicalTime = now

	addr := l.PollAddress(req.PollID)
	err = l.store.Atomically(ctx, func(tx store.Tx) error {
		if err := tx.Create(addr, data, models.PollSpace); err != nil {
			return err
		}
		return tx.Append(entry)
	})
	if err != nil {
		return models.Poll{}, err
	}
	return poll, nil
}

// GetPoll reads the poll record for pollID
func (l *Ledger) GetPoll(ctx context.Context, pollID uint64) (models.Poll, error) {
	addr := l.PollAddress(pollID)
	rec, err := l.store.Read(ctx, addr)
	return decodePoll(addr, rec, err)
}
