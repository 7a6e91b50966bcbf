package httpserver

import (
	"encoding/json"
	"net/http"

	enginehttp "revolution/contexts/collective-governance/revolution-engine/transport/http"
)

func (s *Server) handleAddSubmission(w http.ResponseWriter, r *http.Request) {
	caller := resolveCaller(r)
	if caller == "" {
		writeEngineError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req enginehttp.AddSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.AddSubmissionHandler(r.Context(), r.PathValue("revolution_id"), caller, req)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleSubmissionBoard(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.SubmissionBoardHandler(r.Context(), r.PathValue("revolution_id"))
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	caller := resolveCaller(r)
	if caller == "" {
		writeEngineError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req enginehttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.CastVoteHandler(r.Context(), r.PathValue("revolution_id"), caller, req)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.StandingsHandler(r.Context(), r.PathValue("revolution_id"))
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
