// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

type CandidateHandler struct {
	ledger *ledger.Ledger
}

func NewCandidateHandler(l *ledger.Ledger) *CandidateHandler {
	return &CandidateHandler{ledger: l}
}

// InitializeCandidate handles POST /polls/{id}/candidates
func (h *CandidateHandler) InitializeCandidate(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDParam(w, r)
	if !ok {
		return
	}

	var req models.InitializeCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	cand, poll, err := h.ledger.InitializeCandidate(r.Context(), pollID, req.CandidateName)
	if err != nil {
		middleware.LedgerError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.InitializeCandidateResponse{
		PollID:          pollID,
		CandidateName:   cand.CandidateName,
		Address:         h.ledger.CandidateAddress(pollID, cand.CandidateName).String(),
		CandidateAmount: poll.CandidateAmount,
	})
}

// GetCandidate handles GET /polls/{id}/candidates/{name}
func (h *CandidateHandler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDParam(w, r)
	if !ok {
		return
	}
	name := r.PathValue("name")

	cand, err := h.ledger.GetCandidate(r.Context(), pollID, name)
	if err != nil {
		middleware.LedgerError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidateView{
		PollID:         pollID,
		Address:        h.ledger.CandidateAddress(pollID, name).String(),
		CandidateName:  cand.CandidateName,
		CandidateVotes: cand.CandidateVotes,
	})
}
