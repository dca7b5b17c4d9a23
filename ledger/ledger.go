// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-vote/address"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
)

const (
	DefaultNamespace = "quickly-vote"
	// DefaultPollEndFloor rejects poll_end values that are not plausible
	// unix timestamps (2001-09-09T01:46:40Z).
	DefaultPollEndFloor uint64 = 1_000_000_000
)

// Clock supplies the logical time used for window checks.
type Clock interface {
	Now() uint64
}

// SystemClock reads unix seconds from the wall clock
type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// FixedClock always returns the same reading
type FixedClock uint64

func (c FixedClock) Now() uint64 {
	return uint64(c)
}

type Config struct {
	Namespace string
	// PollEndFloor is the exclusive lower bound for poll_end.
	PollEndFloor uint64
	Logger       *slog.Logger
}

// Ledger validates and applies poll, candidate, and vote transitions.
// It holds no record state of its own; every transition is one unit of work
// on the store.
type Ledger struct {
	store     store.Store
	namespace []byte
	floor     uint64
	logger    *slog.Logger
	newID     func() string
	wallClock func() time.Time
}

func New(s store.Store, cfg Config) *Ledger {
	ns := cfg.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		store:     s,
		namespace: []byte(ns),
		floor:     cfg.PollEndFloor,
		logger:    logger,
		newID:     uuid.NewString,
		wallClock: time.Now,
	}
}

// PollAddress returns the derived address of a poll
func (l *Ledger) PollAddress(pollID uint64) address.Address {
	return address.Poll(l.namespace, pollID)
}

// CandidateAddress returns the derived address of a candidate
func (l *Ledger) CandidateAddress(pollID uint64, candidateName string) address.Address {
	return address.Candidate(l.namespace, pollID, candidateName)
}

func (l *Ledger) entry(op string, pollID uint64) models.LedgerEntry {
	return models.LedgerEntry{
		ID:         l.newID(),
		Op:         op,
		PollID:     pollID,
		RecordedAt: l.wallClock().UTC(),
	}
}

// logOutcome reports a transition result at a level matching its kind.
func (l *Ledger) logOutcome(msg string, err error, args ...any) {
	if err == nil {
		l.logger.Info(msg, args...)
		return
	}
	args = append(args, "code", Code(err), "error", err)
	if Kind(err) == KindInternal {
		l.logger.Error(msg+" failed", args...)
		return
	}
	l.logger.Warn(msg+" rejected", args...)
}

func readPoll(tx store.Tx, addr address.Address) (models.Poll, error) {
	rec, err := tx.Read(addr)
	return decodePoll(addr, rec, err)
}

// decodePoll turns a record read into a poll, mapping a missing record to
// ErrPollNotFound.
func decodePoll(addr address.Address, rec store.Record, err error) (models.Poll, error) {
	var poll models.Poll
	if errors.Is(err, store.ErrNotFound) {
		return poll, ErrPollNotFound
	}
	if err != nil {
		return poll, err
	}
	if err := poll.UnmarshalBinary(rec.Data); err != nil {
		return poll, fmt.Errorf("poll at %s: %w", addr, err)
	}
	return poll, nil
}

func readCandidate(tx store.Tx, addr address.Address) (models.Candidate, error) {
	rec, err := tx.Read(addr)
	return decodeCandidate(addr, rec, err)
}

func decodeCandidate(addr address.Address, rec store.Record, err error) (models.Candidate, error) {
	var cand models.Candidate
	if errors.Is(err, store.ErrNotFound) {
		return cand, ErrCandidateNotFound
	}
	if err != nil {
		return cand, err
	}
	if err := cand.UnmarshalBinary(rec.Data); err != nil {
		return cand, fmt.Errorf("candidate at %s: %w", addr, err)
	}
	return cand, nil
}

// updatePoll decodes, changes, and re-encodes the poll at addr in place.
func updatePoll(tx store.Tx, addr address.Address, fn func(p *models.Poll) error) (models.Poll, error) {
	var out models.Poll
	err := tx.Mutate(addr, func(data []byte) ([]byte, error) {
		if err := out.UnmarshalBinary(data); err != nil {
			return nil, fmt.Errorf("poll at %s: %w", addr, err)
		}
		if err := fn(&out); err != nil {
			return nil, err
		}
		return out.MarshalBinary()
	})
	if errors.Is(err, store.ErrNotFound) {
		return out, ErrPollNotFound
	}
	return out, err
}

func updateCandidate(tx store.Tx, addr address.Address, fn func(c *models.Candidate)) (models.Candidate, error) {
	var out models.Candidate
	err := tx.Mutate(addr, func(data []byte) ([]byte, error) {
		if err := out.UnmarshalBinary(data); err != nil {
			return nil, fmt.Errorf("candidate at %s: %w", addr, err)
		}
		fn(&out)
		return out.MarshalBinary()
	})
	if errors.Is(err, store.ErrNotFound) {
		return out, ErrCandidateNotFound
	}
	return out, err
}
