// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the ledger.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect Dialect) error {
	var schema string
	switch dialect {
	case SQLite:
		schema = sqliteSchema
	case Postgres:
		schema = postgresSchema
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// poll_id and logical_time hold uint64 values reinterpreted as int64.
const sqliteSchema = `
-- Records (polls and candidates), one per derived address
CREATE TABLE IF NOT EXISTS record (
    address TEXT PRIMARY KEY,
    data BLOB NOT NULL,
    space INTEGER NOT NULL CHECK (space > 0),
    version INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

-- Append-only journal of accepted transitions
CREATE TABLE IF NOT EXISTS ledger_entry (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    op TEXT NOT NULL CHECK (op IN ('initialize_poll', 'initialize_candidate', 'vote')),
    poll_id INTEGER NOT NULL,
    candidate_name TEXT NOT NULL DEFAULT '',
    voter TEXT NOT NULL DEFAULT '',
    logical_time INTEGER NOT NULL DEFAULT 0,
    recorded_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ledger_entry_poll_id ON ledger_entry(poll_id, seq);
`

const postgresSchema = `
-- Records (polls and candidates), one per derived address
CREATE TABLE IF NOT EXISTS record (
    address TEXT PRIMARY KEY,
    data BYTEA NOT NULL,
    space INTEGER NOT NULL CHECK (space > 0),
    version BIGINT NOT NULL DEFAULT 1,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

-- Append-only journal of accepted transitions
CREATE TABLE IF NOT EXISTS ledger_entry (
    seq BIGSERIAL PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    op TEXT NOT NULL CHECK (op IN ('initialize_poll', 'initialize_candidate', 'vote')),
    poll_id BIGINT NOT NULL,
    candidate_name TEXT NOT NULL DEFAULT '',
    voter TEXT NOT NULL DEFAULT '',
    logical_time BIGINT NOT NULL DEFAULT 0,
    recorded_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ledger_entry_poll_id ON ledger_entry(poll_id, seq);
`
