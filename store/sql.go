// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/quickly-vote/address"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/models"
)

// SQLStore keeps records in a SQL database. Each unit of work is one
// transaction, and every mutation is a compare-and-commit on the record
// version read earlier in the same unit.
type SQLStore struct {
	db      *sql.DB
	dialect db.Dialect
	now     func() time.Time
}

func NewSQLStore(conn *sql.DB, dialect db.Dialect) *SQLStore {
	return &SQLStore{db: conn, dialect: dialect, now: time.Now}
}

func (s *SQLStore) q(query string) string {
	return db.Rebind(s.dialect, query)
}

func (s *SQLStore) Atomically(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(fmt.Errorf("begin transaction: %w", err))
	}
	defer tx.Rollback()

	stx := &sqlTx{
		ctx:      ctx,
		tx:       tx,
		store:    s,
		versions: make(map[address.Address]uint64),
		spaces:   make(map[address.Address]int),
	}
	if err := fn(stx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

func (s *SQLStore) Read(ctx context.Context, addr address.Address) (Record, error) {
	return readRecord(ctx, s.db, s.q, addr)
}

func (s *SQLStore) Entries(ctx context.Context, pollID uint64) ([]models.LedgerEntry, error) {
	return queryEntries(ctx, s.db, s.q, pollID)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryEntries(ctx context.Context, conn querier, q func(string) string, pollID uint64) ([]models.LedgerEntry, error) {
	rows, err := conn.QueryContext(ctx, q(`
		SELECT id, op, poll_id, candidate_name, voter, logical_time, recorded_at
		FROM ledger_entry
		WHERE poll_id = ?
		ORDER BY seq
	`), int64(pollID))
	if err != nil {
		return nil, classify(fmt.Errorf("query ledger entries: %w", err))
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		var id, logical, recorded int64
		if err := rows.Scan(&e.ID, &e.Op, &id, &e.CandidateName, &e.Voter, &logical, &recorded); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.PollID = uint64(id)
		e.LogicalTime = uint64(logical)
		e.RecordedAt = time.UnixMilli(recorded).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}
	return entries, nil
}

func readRecord(ctx context.Context, conn querier, q func(string) string, addr address.Address) (Record, error) {
	rec := Record{Address: addr}
	err := conn.QueryRowContext(ctx, q(`
		SELECT data, space, version FROM record WHERE address = ?
	`), addr.String()).Scan(&rec.Data, &rec.Space, &rec.Version)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, classify(fmt.Errorf("read record %s: %w", addr, err))
	}
	return rec, nil
}

type sqlTx struct {
	ctx      context.Context
	tx       *sql.Tx
	store    *SQLStore
	versions map[address.Address]uint64
	spaces   map[address.Address]int
}

func (t *sqlTx) Create(addr address.Address, data []byte, budget int) error {
	if err := checkBudget(data, budget); err != nil {
		return err
	}

	now := t.store.now().UTC().UnixMilli()
	_, err := t.tx.ExecContext(t.ctx, t.store.q(`
		INSERT INTO record (address, data, space, version, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)
	`), addr.String(), data, budget, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAddressOccupied
		}
		return classify(fmt.Errorf("insert record %s: %w", addr, err))
	}

	t.versions[addr] = 1
	t.spaces[addr] = budget
	return nil
}

func (t *sqlTx) Read(addr address.Address) (Record, error) {
	rec, err := readRecord(t.ctx, t.tx, t.store.q, addr)
	if err != nil {
		return Record{}, err
	}
	if seen, ok := t.versions[addr]; ok && seen != rec.Version {
		return Record{}, ErrConflict
	}
	t.versions[addr] = rec.Version
	t.spaces[addr] = rec.Space
	return rec, nil
}

func (t *sqlTx) Mutate(addr address.Address, fn func(data []byte) ([]byte, error)) error {
	rec, err := t.Read(addr)
	if err != nil {
		return err
	}

	data, err := fn(rec.Data)
	if err != nil {
		return err
	}
	if err := checkBudget(data, rec.Space); err != nil {
		return err
	}

	res, err := t.tx.ExecContext(t.ctx, t.store.q(`
		UPDATE record
		SET data = ?, version = version + 1, updated_at = ?
		WHERE address = ? AND version = ?
	`), data, t.store.now().UTC().UnixMilli(), addr.String(), rec.Version)
	if err != nil {
		return classify(fmt.Errorf("update record %s: %w", addr, err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update record %s: %w", addr, err)
	}
	if n == 0 {
		return ErrConflict
	}

	t.versions[addr] = rec.Version + 1
	return nil
}

func (t *sqlTx) Append(entry models.LedgerEntry) error {
	_, err := t.tx.ExecContext(t.ctx, t.store.q(`
		INSERT INTO ledger_entry (id, op, poll_id, candidate_name, voter, logical_time, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), entry.ID, entry.Op, int64(entry.PollID), entry.CandidateName, entry.Voter,
		int64(entry.LogicalTime), entry.RecordedAt.UTC().UnixMilli())
	if err != nil {
		return classify(fmt.Errorf("append ledger entry: %w", err))
	}
	return nil
}

func (t *sqlTx) Entries(pollID uint64) ([]models.LedgerEntry, error) {
	return queryEntries(t.ctx, t.tx, t.store.q, pollID)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

// classify maps lost races reported by the database to ErrConflict.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
	}
	return err
}
