// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

type PollHandler struct {
	ledger *ledger.Ledger
	clock  ledger.Clock
}

func NewPollHandler(l *ledger.Ledger, clock ledger.Clock) *PollHandler {
	return &PollHandler{ledger: l, clock: clock}
}

// pollIDParam reads the {id} path value, writing a 400 when it is not a u64
func pollIDParam(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll ID is required")
		return 0, false
	}
	pollID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll ID must be an unsigned 64-bit integer")
		return 0, false
	}
	return pollID, true
}

// InitializePoll handles POST /polls
func (h *PollHandler) InitializePoll(w http.ResponseWriter, r *http.Request) {
	var req models.InitializePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := h.ledger.InitializePoll(r.Context(), req, h.clock.Now())
	if err != nil {
		middleware.LedgerError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.InitializePollResponse{
		PollID:  poll.PollID,
		Address: h.ledger.PollAddress(poll.PollID).String(),
	})
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDParam(w, r)
	if !ok {
		return
	}

	poll, err := h.ledger.GetPoll(r.Context(), pollID)
	if err != nil {
		middleware.LedgerError(w, err)
		return
	}

	voters := make([]string, len(poll.Voters))
	for i, v := range poll.Voters {
		voters[i] = v.String()
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollView{
		PollID:          poll.PollID,
		Address:         h.ledger.PollAddress(poll.PollID).String(),
		Description:     poll.Description,
		PollStart:       poll.PollStart,
		PollEnd:         poll.PollEnd,
		CandidateAmount: poll.CandidateAmount,
		TotalVotes:      poll.TotalVotes,
		Voters:          voters,
	})
}
