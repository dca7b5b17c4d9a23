// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database DSN (required unless DatabaseType is memory)
  - DatabaseType: sqlite, postgres, or memory (default: sqlite)
  - Namespace: Address derivation namespace (default: quickly-vote)
  - TokenAudience: Audience voter tokens must carry (default: quickly-vote)
  - PollEndFloor: Exclusive lower bound for poll_end (default: 1000000000)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-namespace        Ledger namespace
	-audience         Voter token audience
	-poll-end-floor   poll_end sanity floor

# Environment Variables

The environment is read first with github.com/caarlos0/env:

	PORT                 → -p
	DATABASE_URL         → -d
	DATABASE_TYPE        → -t
	LEDGER_NAMESPACE     → -namespace
	VOTER_TOKEN_AUDIENCE → -audience
	POLL_END_FLOOR       → -poll-end-floor

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - an environment value does not parse
  - DATABASE_URL is missing for sqlite or postgres
  - DATABASE_TYPE is not one of the supported backends
  - the port is out of range

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
*/
package cliparse
