// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/quickly-vote/models"
)

var (
	ErrMissingToken = errors.New("voter token is required")
	ErrInvalidToken = errors.New("invalid voter token")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateVoterKey creates a new ed25519 key pair for a voter.
// The public key is the voter's identity on the ledger.
func GenerateVoterKey() (ed25519.PrivateKey, models.Identity, error) {
	var id models.Identity
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, id, fmt.Errorf("failed to generate voter key: %w", err)
	}
	copy(id[:], pub)
	return priv, id, nil
}

// IssueVoterToken signs a voter token with the voter's own private key.
// The subject carries the hex public key, so the token proves possession
// of the identity it names.
func IssueVoterToken(key ed25519.PrivateKey, audience string, ttl time.Duration, now time.Time) (string, error) {
	if len(key) != ed25519.PrivateKeySize {
		return "", errors.New("invalid ed25519 private key")
	}
	pub := key.Public().(ed25519.PublicKey)
	jti, err := GenerateID(16)
	if err != nil {
		return "", err
	}

	claims := jwt.RegisteredClaims{
		Subject:   hex.EncodeToString(pub),
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        jti,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign voter token: %w", err)
	}
	return signed, nil
}

// VerifyVoterToken checks the token signature against the key named in its
// subject and returns that key as the caller identity.
func VerifyVoterToken(token, audience string, now time.Time) (models.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Identity{}, ErrMissingToken
	}

	var claims jwt.RegisteredClaims
	var id models.Identity
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		sub, err := t.Claims.GetSubject()
		if err != nil {
			return nil, err
		}
		id, err = models.ParseIdentity(sub)
		if err != nil {
			return nil, err
		}
		return ed25519.PublicKey(id[:]), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return id, nil
}
