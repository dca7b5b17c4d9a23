// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestGenerateVoterKey(t *testing.T) {
	key, id, err := GenerateVoterKey()
	if err != nil {
		t.Fatalf("GenerateVoterKey() error = %v", err)
	}
	pub := key.Public().(ed25519.PublicKey)
	if hex.EncodeToString(pub) != id.String() {
		t.Errorf("identity %s does not match public key %x", id, pub)
	}

	_, other, _ := GenerateVoterKey()
	if id == other {
		t.Error("GenerateVoterKey() produced the same identity twice")
	}
}

func TestVoterTokenRoundTrip(t *testing.T) {
	key, id, err := GenerateVoterKey()
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now()

	token, err := IssueVoterToken(key, "ballots", time.Minute, now)
	if err != nil {
		t.Fatalf("IssueVoterToken() error = %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("expected compact JWT, got %q", token)
	}

	got, err := VerifyVoterToken(token, "ballots", now.Add(30*time.Second))
	if err != nil {
		t.Fatalf("VerifyVoterToken() error = %v", err)
	}
	if got != id {
		t.Errorf("VerifyVoterToken() = %s, want %s", got, id)
	}
}

func TestVerifyVoterTokenRejects(t *testing.T) {
	key, id, err := GenerateVoterKey()
	if err != nil {
		t.Fatal(err)
	}
	_, otherKey, _ := ed25519.GenerateKey(rand.Reader)
	now := time.Now()

	valid, _ := IssueVoterToken(key, "ballots", time.Minute, now)

	// signed by a different key while claiming id as subject
	forged, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, jwt.RegisteredClaims{
		Subject:   id.String(),
		Audience:  jwt.ClaimStrings{"ballots"},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}).SignedString(otherKey)
	if err != nil {
		t.Fatal(err)
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, jwt.RegisteredClaims{
		Subject:  id.String(),
		Audience: jwt.ClaimStrings{"ballots"},
	}).SignedString(key)
	if err != nil {
		t.Fatal(err)
	}

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, jwt.RegisteredClaims{
		Subject:   "alice",
		Audience:  jwt.ClaimStrings{"ballots"},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}).SignedString(key)
	if err != nil {
		t.Fatal(err)
	}

	hmac, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id.String(),
		Audience:  jwt.ClaimStrings{"ballots"},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}).SignedString([]byte(id.String()))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		token    string
		audience string
		at       time.Time
	}{
		{"wrong audience", valid, "other", now},
		{"expired", valid, "ballots", now.Add(2 * time.Minute)},
		{"forged signature", forged, "ballots", now},
		{"no expiry", noExpiry, "ballots", now},
		{"subject is not a key", badSubject, "ballots", now},
		{"hmac algorithm", hmac, "ballots", now},
		{"garbage", "a.b.c", "ballots", now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyVoterToken(tt.token, tt.audience, tt.at)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("VerifyVoterToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}

	if _, err := VerifyVoterToken("  ", "ballots", now); !errors.Is(err, ErrMissingToken) {
		t.Errorf("VerifyVoterToken(empty) error = %v, want ErrMissingToken", err)
	}
}

func TestIssueVoterTokenRejectsBadKey(t *testing.T) {
	if _, err := IssueVoterToken(ed25519.PrivateKey{1, 2, 3}, "ballots", time.Minute, time.Now()); err == nil {
		t.Error("expected error for truncated key")
	}
}
