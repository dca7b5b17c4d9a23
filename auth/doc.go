// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides voter identity verification and token utilities.

# Voter Identity

A voter's identity is an ed25519 public key:

	key, identity, err := auth.GenerateVoterKey()

The ledger never sees the private key. It only compares identities.

# Voter Tokens

Voters sign their own short-lived EdDSA JWTs:

	token, err := auth.IssueVoterToken(key, audience, 5*time.Minute, time.Now())

The subject claim is the hex public key. Verification uses that key, so a
valid signature proves the caller holds the identity it claims:

	identity, err := auth.VerifyVoterToken(token, audience, time.Now())

Tokens must carry the configured audience and an expiry.

# ID Generation

Random hex IDs, used for token jti claims:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
