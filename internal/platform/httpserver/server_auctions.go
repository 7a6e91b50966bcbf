package httpserver

import (
	"encoding/json"
	"io"
	"net/http"

	enginehttp "revolution/contexts/collective-governance/revolution-engine/transport/http"
)

func (s *Server) handleAuctionBoard(w http.ResponseWriter, r *http.Request) {
	periodID, ok := pathInt(r, "period_id")
	if !ok {
		writeEngineError(w, http.StatusBadRequest, "invalid_period_id", "period_id must be a non-negative integer")
		return
	}
	resp, err := s.engine.Handler.AuctionBoardHandler(r.Context(), r.PathValue("revolution_id"), periodID)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStartAuction(w http.ResponseWriter, r *http.Request) {
	periodID, ok := pathInt(r, "period_id")
	if !ok {
		writeEngineError(w, http.StatusBadRequest, "invalid_period_id", "period_id must be a non-negative integer")
		return
	}
	auctionID, ok := pathInt(r, "auction_id")
	if !ok {
		writeEngineError(w, http.StatusBadRequest, "invalid_auction_id", "auction_id must be a non-negative integer")
		return
	}

	// Start body is optional; an empty body means no entropy override.
	var req enginehttp.StartAuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.StartAuctionHandler(r.Context(), r.PathValue("revolution_id"), periodID, auctionID, req)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePlaceBid(w http.ResponseWriter, r *http.Request) {
	caller := resolveCaller(r)
	if caller == "" {
		writeEngineError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	periodID, ok := pathInt(r, "period_id")
	if !ok {
		writeEngineError(w, http.StatusBadRequest, "invalid_period_id", "period_id must be a non-negative integer")
		return
	}
	auctionID, ok := pathInt(r, "auction_id")
	if !ok {
		writeEngineError(w, http.StatusBadRequest, "invalid_auction_id", "auction_id must be a non-negative integer")
		return
	}
	var req enginehttp.PlaceBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.PlaceBidHandler(r.Context(), r.PathValue("revolution_id"), periodID, auctionID, req)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleSettleAuction(w http.ResponseWriter, r *http.Request) {
	periodID, ok := pathInt(r, "period_id")
	if !ok {
		writeEngineError(w, http.StatusBadRequest, "invalid_period_id", "period_id must be a non-negative integer")
		return
	}
	auctionID, ok := pathInt(r, "auction_id")
	if !ok {
		writeEngineError(w, http.StatusBadRequest, "invalid_auction_id", "auction_id must be a non-negative integer")
		return
	}
	resp, err := s.engine.Handler.SettleAuctionHandler(r.Context(), r.PathValue("revolution_id"), periodID, auctionID)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
