package httpserver

import (
	"encoding/json"
	"net/http"

	enginehttp "revolution/contexts/collective-governance/revolution-engine/transport/http"
)

func (s *Server) handleCreateRevolution(w http.ResponseWriter, r *http.Request) {
	var req enginehttp.CreateRevolutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.CreateRevolutionHandler(r.Context(), req)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListRevolutions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.ListRevolutionsHandler(r.Context())
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRevolution(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.GetRevolutionHandler(r.Context(), r.PathValue("revolution_id"))
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInitiate(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.InitiateHandler(r.Context(), r.PathValue("revolution_id"))
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.AdvanceHandler(r.Context(), r.PathValue("revolution_id"))
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateGovernance(w http.ResponseWriter, r *http.Request) {
	var req enginehttp.GovernanceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.engine.Handler.UpdateGovernanceHandler(r.Context(), r.PathValue("revolution_id"), req); err != nil {
		writeEngineDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
