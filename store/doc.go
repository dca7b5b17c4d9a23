// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the record substrate under the ledger.

Records are opaque byte slices kept at derived addresses. Each record has a
fixed space chosen at creation and a version bumped on every mutation.

# Units of Work

All writes go through Atomically. The function passed in sees its own writes;
other readers see none of them until it returns nil:

	err := s.Atomically(ctx, func(tx store.Tx) error {
		if err := tx.Create(addr, data, models.PollSpace); err != nil {
			return err
		}
		return tx.Append(entry)
	})

Returning an error discards every write in the unit.

# Backends

  - MemoryStore: process memory, one mutex around each unit
  - SQLStore: SQLite or PostgreSQL, one transaction per unit

SQLStore mutations update WHERE version matches the version read earlier in
the unit. A lost race returns ErrConflict; callers may resubmit.

# Errors

  - ErrNotFound: no record at the address
  - ErrAddressOccupied: Create on an occupied address
  - ErrSizeBudgetExceeded: data larger than the record's space
  - ErrConflict: concurrent commit won; unit rolled back
*/
package store
