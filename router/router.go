// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
)

func NewRouter(l *ledger.Ledger, cfg cliparse.Config, clock ledger.Clock) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(l, clock)
	candidateHandler := handlers.NewCandidateHandler(l)
	votingHandler := handlers.NewVotingHandler(l, cfg, clock)
	resultsHandler := handlers.NewResultsHandler(l)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll and candidate records
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.InitializePoll))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("POST /polls/{id}/candidates", middleware.WithLogging(candidateHandler.InitializeCandidate))
	mux.HandleFunc("GET /polls/{id}/candidates/{name}", middleware.WithLogging(candidateHandler.GetCandidate))

	// Voting (requires a voter token)
	mux.HandleFunc("POST /polls/{id}/votes", middleware.WithLogging(votingHandler.Vote))

	// Tallies and journal
	mux.HandleFunc("GET /polls/{id}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /polls/{id}/history", middleware.WithLogging(resultsHandler.GetHistory))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote API v1"))
	})

	return mux
}
