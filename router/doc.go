// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Vote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(l, cfg, ledger.SystemClock{})

# Endpoints

Health:

	GET /health

Records:

	POST /polls                         - Initialize poll
	GET  /polls/{id}                    - Poll record
	POST /polls/{id}/candidates         - Initialize candidate
	GET  /polls/{id}/candidates/{name}  - Candidate record

Voting (requires Authorization: Bearer <voter token>):

	POST /polls/{id}/votes - Cast a vote

Tallies:

	GET /polls/{id}/results - Live per-candidate tallies
	GET /polls/{id}/history - Accepted transitions in commit order

# Handler Initialization

The router creates handler instances with dependency injection:

	pollHandler := handlers.NewPollHandler(l, clock)
	candidateHandler := handlers.NewCandidateHandler(l)
	votingHandler := handlers.NewVotingHandler(l, cfg, clock)
	resultsHandler := handlers.NewResultsHandler(l)

The clock supplies the logical time for poll creation and vote window checks.
*/
package router
