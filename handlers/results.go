// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

type ResultsHandler struct {
	ledger *ledger.Ledger
}

func NewResultsHandler(l *ledger.Ledger) *ResultsHandler {
	return &ResultsHandler{ledger: l}
}

// GetResults handles GET /polls/{id}/results
// Tallies are live; there is no closed state to wait for.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDParam(w, r)
	if !ok {
		return
	}

	results, err := h.ledger.Results(r.Context(), pollID)
	if err != nil {
		middleware.LedgerError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// GetHistory handles GET /polls/{id}/history
func (h *ResultsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDParam(w, r)
	if !ok {
		return
	}

	entries, err := h.ledger.History(r.Context(), pollID)
	if err != nil {
		middleware.LedgerError(w, err)
		return
	}
	if entries == nil {
		entries = []models.LedgerEntry{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.HistoryResponse{
		PollID:  pollID,
		Entries: entries,
	})
}
