// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

const DiscriminatorSize = 8

// Space reserved per record. Records never resize after creation, so the
// voter set is budgeted at full cardinality up front.
const (
	PollSpace = DiscriminatorSize +
		8 + // poll_id
		4 + MaxDescriptionLen + // description
		8 + // poll_start
		8 + // poll_end
		8 + // candidate_amount
		8 + // total_votes
		4 + MaxVoters*IdentitySize // voters

	CandidateSpace = DiscriminatorSize +
		4 + MaxCandidateNameLen + // candidate_name
		8 // candidate_votes
)

var (
	PollDiscriminator      = discriminator("Poll")
	CandidateDiscriminator = discriminator("Candidate")
)

func discriminator(name string) [DiscriminatorSize]byte {
	sum := sha256.Sum256([]byte("account:" + name))
	var d [DiscriminatorSize]byte
	copy(d[:], sum[:DiscriminatorSize])
	return d
}

// MarshalBinary encodes the poll in its persisted layout
func (p *Poll) MarshalBinary() ([]byte, error) {
	if len(p.Description) > MaxDescriptionLen {
		return nil, fmt.Errorf("%w: description is %d bytes", ErrFieldExceedsBound, len(p.Description))
	}
	if len(p.Voters) > MaxVoters {
		return nil, fmt.Errorf("%w: %d voters", ErrFieldExceedsBound, len(p.Voters))
	}

	size := DiscriminatorSize + 8 + 4 + len(p.Description) + 8*4 + 4 + len(p.Voters)*IdentitySize
	b := make([]byte, 0, size)
	b = append(b, PollDiscriminator[:]...)
	b = binary.LittleEndian.AppendUint64(b, p.PollID)
	b = appendString(b, p.Description)
	b = binary.LittleEndian.AppendUint64(b, p.PollStart)
	b = binary.LittleEndian.AppendUint64(b, p.PollEnd)
	b = binary.LittleEndian.AppendUint64(b, p.CandidateAmount)
	b = binary.LittleEndian.AppendUint64(b, p.TotalVotes)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(p.Voters)))
	for _, v := range p.Voters {
		b = append(b, v[:]...)
	}
	return b, nil
}

// UnmarshalBinary decodes a poll written by MarshalBinary
func (p *Poll) UnmarshalBinary(data []byte) error {
	r := reader{buf: data}
	if err := r.discriminator(PollDiscriminator); err != nil {
		return err
	}

	var out Poll
	out.PollID = r.u64()
	out.Description = r.str(MaxDescriptionLen)
	out.PollStart = r.u64()
	out.PollEnd = r.u64()
	out.CandidateAmount = r.u64()
	out.TotalVotes = r.u64()

	n := r.u32()
	if r.err == nil && n > MaxVoters {
		r.err = fmt.Errorf("%w: %d voters", ErrFieldExceedsBound, n)
	}
	if r.err == nil && n > 0 {
		out.Voters = make([]Identity, 0, n)
		for i := uint32(0); i < n; i++ {
			var id Identity
			copy(id[:], r.next(IdentitySize))
			out.Voters = append(out.Voters, id)
		}
	}
	if err := r.done(); err != nil {
		return fmt.Errorf("decode poll: %w", err)
	}

	*p = out
	return nil
}

// MarshalBinary encodes the candidate in its persisted layout
func (c *Candidate) MarshalBinary() ([]byte, error) {
	if len(c.CandidateName) > MaxCandidateNameLen {
		return nil, fmt.Errorf("%w: candidate name is %d bytes", ErrFieldExceedsBound, len(c.CandidateName))
	}
	b := make([]byte, 0, DiscriminatorSize+4+len(c.CandidateName)+8)
	b = append(b, CandidateDiscriminator[:]...)
	b = appendString(b, c.CandidateName)
	b = binary.LittleEndian.AppendUint64(b, c.CandidateVotes)
	return b, nil
}

// UnmarshalBinary decodes a candidate written by MarshalBinary
func (c *Candidate) UnmarshalBinary(data []byte) error {
	r := reader{buf: data}
	if err := r.discriminator(CandidateDiscriminator); err != nil {
		return err
	}

	var out Candidate
	out.CandidateName = r.str(MaxCandidateNameLen)
	out.CandidateVotes = r.u64()
	if err := r.done(); err != nil {
		return fmt.Errorf("decode candidate: %w", err)
	}

	*c = out
	return nil
}

func appendString(b []byte, s string) []byte {
	b = binary.LittleEndian.AppendUint32(b, uint32(len(s)))
	return append(b, s...)
}

// reader walks a record buffer, keeping the first error.
type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf)-r.off < n {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d", ErrRecordTooShort, n, r.off)
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) discriminator(want [DiscriminatorSize]byte) error {
	b := r.next(DiscriminatorSize)
	if r.err != nil {
		return r.err
	}
	if [DiscriminatorSize]byte(b) != want {
		return ErrDiscriminatorMismatch
	}
	return nil
}

func (r *reader) u32() uint32 {
	b := r.next(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) u64() uint64 {
	b := r.next(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *reader) str(max int) string {
	n := r.u32()
	if r.err != nil {
		return ""
	}
	if int(n) > max {
		r.err = fmt.Errorf("%w: %d > %d bytes", ErrFieldExceedsBound, n, max)
		return ""
	}
	return string(r.next(int(n)))
}

func (r *reader) done() error {
	if r.err != nil {
		return r.err
	}
	if r.off != len(r.buf) {
		return fmt.Errorf("%w: %d bytes", ErrTrailingRecordData, len(r.buf)-r.off)
	}
	return nil
}
