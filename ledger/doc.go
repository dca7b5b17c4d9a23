// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger implements the voting state machine.

Polls and candidates live in a store.Store at addresses derived from the
ledger namespace. The ledger changes them only through three transitions:

	l.InitializePoll(ctx, req, now)
	l.InitializeCandidate(ctx, pollID, name)
	l.Vote(ctx, pollID, name, voter, now)

Each transition is a single unit of work. Its record writes and its journal
entry commit together, and a rejected transition writes nothing.

# Time

The ledger never reads the clock for validation. Callers pass now as a
logical time (unix seconds on the HTTP surface). A poll accepts votes while
poll_start <= now <= poll_end.

# Errors

Every rejection is a sentinel checked with errors.Is. Kind groups them:

	KindValidation  bad input, nothing was read
	KindNotFound    the poll or candidate does not exist
	KindConflict    the current state forbids the transition
	KindRetry       another commit won a race; resubmit unchanged

The ledger does not retry on its own.

# Queries

	l.GetPoll(ctx, pollID)
	l.GetCandidate(ctx, pollID, name)
	l.Results(ctx, pollID)   // per-candidate tallies from one read
	l.History(ctx, pollID)   // accepted transitions in commit order
*/
package ledger
