// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open selects the driver by dialect and pings the server:

	conn, err := db.Open(db.Postgres, "postgres://...")
	conn, err := db.Open(db.SQLite, "file:ledger.db")

SQLite connections are capped at one open connection so that ":memory:"
databases are shared and writers are serialized.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, db.SQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - record: one row per derived address (data, space, version)
  - ledger_entry: append-only journal of accepted transitions

# Placeholders

Queries are written with ? placeholders. Rebind converts them to $1, $2, ...
for PostgreSQL.
*/
package db
