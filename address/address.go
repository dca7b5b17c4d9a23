// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package address

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Size is the byte length of a derived address.
const Size = sha256.Size

// Address locates one record in the store.
type Address [Size]byte

// String returns the lowercase hex form of the address
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// Derive computes the address for namespace and seeds.
// Every element is written with a 4-byte little-endian length prefix, so
// ("ab", "c") and ("a", "bc") hash different inputs.
func Derive(namespace []byte, seeds ...[]byte) Address {
	h := sha256.New()
	var prefix [4]byte

	binary.LittleEndian.PutUint32(prefix[:], uint32(len(namespace)))
	h.Write(prefix[:])
	h.Write(namespace)

	binary.LittleEndian.PutUint32(prefix[:], uint32(len(seeds)))
	h.Write(prefix[:])
	for _, seed := range seeds {
		binary.LittleEndian.PutUint32(prefix[:], uint32(len(seed)))
		h.Write(prefix[:])
		h.Write(seed)
	}

	var a Address
	copy(a[:], h.Sum(nil))
	return a
}

// PollSeed encodes a poll id as 8 little-endian bytes
func PollSeed(pollID uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, pollID)
	return b
}

// Poll returns the address of the poll with pollID.
func Poll(namespace []byte, pollID uint64) Address {
	return Derive(namespace, PollSeed(pollID))
}

// Candidate returns the address of candidateName under pollID.
func Candidate(namespace []byte, pollID uint64, candidateName string) Address {
	return Derive(namespace, PollSeed(pollID), []byte(candidateName))
}
