// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

type VotingHandler struct {
	ledger *ledger.Ledger
	cfg    cliparse.Config
	clock  ledger.Clock
	// now is the wall clock used for token expiry
	now func() time.Time
}

func NewVotingHandler(l *ledger.Ledger, cfg cliparse.Config, clock ledger.Clock) *VotingHandler {
	return &VotingHandler{ledger: l, cfg: cfg, clock: clock, now: time.Now}
}

// Vote handles POST /polls/{id}/votes
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDParam(w, r)
	if !ok {
		return
	}

	// The voter identity comes only from a verified token
	token, err := middleware.BearerToken(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authorization: Bearer <voter token> required")
		return
	}
	voter, err := auth.VerifyVoterToken(token, h.cfg.TokenAudience, h.now())
	if err != nil {
		slog.Warn("voter token rejected", "poll_id", pollID, "error", err)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.ledger.Vote(r.Context(), pollID, req.CandidateName, voter, h.clock.Now())
	if err != nil {
		middleware.LedgerError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		PollID:         pollID,
		CandidateName:  res.Candidate.CandidateName,
		CandidateVotes: res.Candidate.CandidateVotes,
		TotalVotes:     res.Poll.TotalVotes,
		EntryID:        res.EntryID,
	})
}
