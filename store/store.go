// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/quickly-vote/address"
	"github.com/danielhkuo/quickly-vote/models"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrAddressOccupied    = errors.New("address already holds a record")
	ErrSizeBudgetExceeded = errors.New("record exceeds its size budget")
	// ErrConflict means another commit touched the same record first.
	// The unit was rolled back and may be resubmitted unchanged.
	ErrConflict = errors.New("conflicting concurrent commit")
)

// Record is the raw stored form of a poll or candidate.
type Record struct {
	Address address.Address
	Data    []byte
	Space   int
	Version uint64
}

// Tx is one indivisible unit of work. Nothing written through a Tx is
// visible to other readers until the unit commits.
type Tx interface {
	// Create stores data at addr with a fixed space of budget bytes.
	Create(addr address.Address, data []byte, budget int) error
	Read(addr address.Address) (Record, error)
	// Mutate replaces the record's data with fn's result. fn receives a copy.
	Mutate(addr address.Address, fn func(data []byte) ([]byte, error)) error
	// Append adds an entry to the journal.
	Append(entry models.LedgerEntry) error
	// Entries lists the journal entries for pollID in commit order,
	// including any appended earlier in this unit.
	Entries(pollID uint64) ([]models.LedgerEntry, error)
}

// Store is the record substrate the ledger runs on.
type Store interface {
	// Atomically runs fn as one unit. If fn returns an error every write is
	// discarded and the error is returned unchanged.
	Atomically(ctx context.Context, fn func(tx Tx) error) error
	Read(ctx context.Context, addr address.Address) (Record, error)
	Entries(ctx context.Context, pollID uint64) ([]models.LedgerEntry, error)
}

func checkBudget(data []byte, budget int) error {
	if budget <= 0 || len(data) > budget {
		return ErrSizeBudgetExceeded
	}
	return nil
}
