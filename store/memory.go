// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"slices"
	"sync"

	"github.com/danielhkuo/quickly-vote/address"
	"github.com/danielhkuo/quickly-vote/models"
)

// MemoryStore keeps records in process memory.
// Units of work run one at a time under a single mutex.
type MemoryStore struct {
	mu      sync.Mutex
	records map[address.Address]Record
	entries []models.LedgerEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[address.Address]Record)}
}

func (s *MemoryStore) Atomically(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{store: s, staged: make(map[address.Address]Record)}
	if err := fn(tx); err != nil {
		return err
	}

	for addr, rec := range tx.staged {
		s.records[addr] = rec
	}
	s.entries = append(s.entries, tx.entries...)
	return nil
}

func (s *MemoryStore) Read(_ context.Context, addr address.Address) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[addr]
	if !ok {
		return Record{}, ErrNotFound
	}
	rec.Data = slices.Clone(rec.Data)
	return rec, nil
}

func (s *MemoryStore) Entries(_ context.Context, pollID uint64) ([]models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterEntries(nil, s.entries, pollID), nil
}

func filterEntries(out, entries []models.LedgerEntry, pollID uint64) []models.LedgerEntry {
	for _, e := range entries {
		if e.PollID == pollID {
			out = append(out, e)
		}
	}
	return out
}

type memoryTx struct {
	store   *MemoryStore
	staged  map[address.Address]Record
	entries []models.LedgerEntry
}

func (tx *memoryTx) lookup(addr address.Address) (Record, bool) {
	if rec, ok := tx.staged[addr]; ok {
		return rec, true
	}
	rec, ok := tx.store.records[addr]
	return rec, ok
}

func (tx *memoryTx) Create(addr address.Address, data []byte, budget int) error {
	if _, ok := tx.lookup(addr); ok {
		return ErrAddressOccupied
	}
	if err := checkBudget(data, budget); err != nil {
		return err
	}
	tx.staged[addr] = Record{
		Address: addr,
		Data:    slices.Clone(data),
		Space:   budget,
		Version: 1,
	}
	return nil
}

func (tx *memoryTx) Read(addr address.Address) (Record, error) {
	rec, ok := tx.lookup(addr)
	if !ok {
		return Record{}, ErrNotFound
	}
	rec.Data = slices.Clone(rec.Data)
	return rec, nil
}

func (tx *memoryTx) Mutate(addr address.Address, fn func(data []byte) ([]byte, error)) error {
	rec, ok := tx.lookup(addr)
	if !ok {
		return ErrNotFound
	}
	data, err := fn(slices.Clone(rec.Data))
	if err != nil {
		return err
	}
	if err := checkBudget(data, rec.Space); err != nil {
		return err
	}
	rec.Data = slices.Clone(data)
	rec.Version++
	tx.staged[addr] = rec
	return nil
}

func (tx *memoryTx) Append(entry models.LedgerEntry) error {
	tx.entries = append(tx.entries, entry)
	return nil
}

func (tx *memoryTx) Entries(pollID uint64) ([]models.LedgerEntry, error) {
	out := filterEntries(nil, tx.store.entries, pollID)
	return filterEntries(out, tx.entries, pollID), nil
}
