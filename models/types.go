package models

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// Record limits
const (
	MaxDescriptionLen   = 200
	MaxCandidateNameLen = 32
	MaxVoters           = 1000
	IdentitySize        = 32
)

// Journal operations
const (
	OpInitializePoll      = "initialize_poll"
	OpInitializeCandidate = "initialize_candidate"
	OpVote                = "vote"
)

var (
	ErrInvalidIdentity       = errors.New("invalid identity")
	ErrVoterCapacityExceeded = errors.New("voter set is full")
	ErrDuplicateVoter        = errors.New("identity already in voter set")
	ErrRecordTooShort        = errors.New("record data too short")
	ErrDiscriminatorMismatch = errors.New("record discriminator mismatch")
	ErrFieldExceedsBound     = errors.New("record field exceeds declared bound")
	ErrTrailingRecordData    = errors.New("unexpected trailing record data")
)

// Identity is a verified caller identity (an ed25519 public key).
// The ledger only compares identities for equality.
type Identity [IdentitySize]byte

func (id Identity) String() string {
	return hex.EncodeToString(id[:])
}

// ParseIdentity decodes a hex identity
func ParseIdentity(s string) (Identity, error) {
	var id Identity
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != IdentitySize {
		return id, fmt.Errorf("%w: %q", ErrInvalidIdentity, s)
	}
	copy(id[:], b)
	return id, nil
}

// Domain types

type Poll struct {
	PollID          uint64
	Description     string
	PollStart       uint64
	PollEnd         uint64
	CandidateAmount uint64
	TotalVotes      uint64
	Voters          []Identity
}

// HasVoted reports whether id is already in the voter set.
func (p *Poll) HasVoted(id Identity) bool {
	for _, v := range p.Voters {
		if v == id {
			return true
		}
	}
	return false
}

// AddVoter inserts id into the voter set.
func (p *Poll) AddVoter(id Identity) error {
	if p.HasVoted(id) {
		return ErrDuplicateVoter
	}
	if len(p.Voters) >= MaxVoters {
		return ErrVoterCapacityExceeded
	}
	p.Voters = append(p.Voters, id)
	return nil
}

// InWindow reports whether now falls inside [PollStart, PollEnd].
func (p *Poll) InWindow(now uint64) bool {
	return now >= p.PollStart && now <= p.PollEnd
}

type Candidate struct {
	CandidateName  string
	CandidateVotes uint64
}

// LedgerEntry is one accepted transition in the append-only journal.
type LedgerEntry struct {
	ID            string    `json:"id"`
	Op            string    `json:"op"`
	PollID        uint64    `json:"poll_id"`
	CandidateName string    `json:"candidate_name,omitempty"`
	Voter         string    `json:"voter,omitempty"`
	LogicalTime   uint64    `json:"logical_time,omitempty"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// Request types

type InitializePollRequest struct {
	PollID      uint64 `json:"poll_id"`
	Description string `json:"description"`
	PollStart   uint64 `json:"poll_start"`
	PollEnd     uint64 `json:"poll_end"`
}

type InitializeCandidateRequest struct {
	CandidateName string `json:"candidate_name"`
}

type VoteRequest struct {
	CandidateName string `json:"candidate_name"`
}

// Response types

type InitializePollResponse struct {
	PollID  uint64 `json:"poll_id"`
	Address string `json:"address"`
}

type InitializeCandidateResponse struct {
	PollID          uint64 `json:"poll_id"`
	CandidateName   string `json:"candidate_name"`
	Address         string `json:"address"`
	CandidateAmount uint64 `json:"candidate_amount"`
}

type VoteResponse struct {
	PollID         uint64 `json:"poll_id"`
	CandidateName  string `json:"candidate_name"`
	CandidateVotes uint64 `json:"candidate_votes"`
	TotalVotes     uint64 `json:"total_votes"`
	EntryID        string `json:"entry_id"`
}

type PollView struct {
	PollID          uint64   `json:"poll_id"`
	Address         string   `json:"address"`
	Description     string   `json:"description"`
	PollStart       uint64   `json:"poll_start"`
	PollEnd         uint64   `json:"poll_end"`
	CandidateAmount uint64   `json:"candidate_amount"`
	TotalVotes      uint64   `json:"total_votes"`
	Voters          []string `json:"voters"`
}

type CandidateView struct {
	PollID         uint64 `json:"poll_id"`
	Address        string `json:"address"`
	CandidateName  string `json:"candidate_name"`
	CandidateVotes uint64 `json:"candidate_votes"`
}

type CandidateTally struct {
	CandidateName  string `json:"candidate_name"`
	CandidateVotes uint64 `json:"candidate_votes"`
}

type PollResults struct {
	PollID     uint64           `json:"poll_id"`
	TotalVotes uint64           `json:"total_votes"`
	VoterCount int              `json:"voter_count"`
	Candidates []CandidateTally `json:"candidates"`
	Consistent bool             `json:"consistent"` // tallies agree with total_votes, voters, and candidate_amount
}

type HistoryResponse struct {
	PollID  uint64        `json:"poll_id"`
	Entries []LedgerEntry `json:"entries"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
