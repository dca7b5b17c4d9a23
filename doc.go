// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote API server.

Quickly Vote is a voting ledger. Polls and candidates are fixed-layout
records at derived addresses, changed only by three validated transitions:
initialize poll, initialize candidate, and vote. Each voter identity may vote
once per poll, only inside the poll's time window.

# Starting the Server

The server reads a .env file if present, then the environment, then flags:

	DATABASE_URL=file:votes.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

Or with no persistence:

	go run . -t memory

# Configuration

  - DATABASE_TYPE (-t): sqlite, postgres, or memory (default: sqlite)
  - DATABASE_URL (-d): DSN, required unless memory
  - PORT (-p): Server port (default: 3318)
  - LEDGER_NAMESPACE (-namespace): Address derivation namespace
  - VOTER_TOKEN_AUDIENCE (-audience): Audience voter tokens must carry
  - POLL_END_FLOOR (-poll-end-floor): Smallest rejected poll_end plus one

Changing the namespace changes every address, so existing records become
unreachable.

# Architecture

  - address: Deterministic record addresses
  - models: Records, binary layout, request/response types
  - store: Record substrate (memory, SQLite, PostgreSQL)
  - ledger: Poll, candidate, and vote transitions
  - auth: Voter keys and EdDSA voter tokens
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON and error helpers
  - db: Connections and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
