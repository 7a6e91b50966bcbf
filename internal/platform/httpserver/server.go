package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	revolutionengine "revolution/contexts/collective-governance/revolution-engine"
	domainerrors "revolution/contexts/collective-governance/revolution-engine/domain/errors"
	enginehttp "revolution/contexts/collective-governance/revolution-engine/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "revolution/internal/platform/httpserver/docs"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	engine revolutionengine.Module
}

func New(engine revolutionengine.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		engine: engine,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("POST /v1/revolutions", s.handleCreateRevolution)
	s.mux.HandleFunc("GET /v1/revolutions", s.handleListRevolutions)
	s.mux.HandleFunc("GET /v1/revolutions/{revolution_id}", s.handleGetRevolution)
	s.mux.HandleFunc("POST /v1/revolutions/{revolution_id}/initiate", s.handleInitiate)
	s.mux.HandleFunc("POST /v1/revolutions/{revolution_id}/advance", s.handleAdvance)
	s.mux.HandleFunc("PATCH /v1/revolutions/{revolution_id}/governance", s.handleUpdateGovernance)

	s.mux.HandleFunc("POST /v1/revolutions/{revolution_id}/submissions", s.handleAddSubmission)
	s.mux.HandleFunc("GET /v1/revolutions/{revolution_id}/submissions", s.handleSubmissionBoard)
	s.mux.HandleFunc("POST /v1/revolutions/{revolution_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("GET /v1/revolutions/{revolution_id}/standings", s.handleStandings)

	s.mux.HandleFunc("GET /v1/revolutions/{revolution_id}/auction-periods/{period_id}", s.handleAuctionBoard)
	s.mux.HandleFunc("POST /v1/revolutions/{revolution_id}/auction-periods/{period_id}/auctions/{auction_id}/start", s.handleStartAuction)
	s.mux.HandleFunc("POST /v1/revolutions/{revolution_id}/auction-periods/{period_id}/auctions/{auction_id}/bids", s.handlePlaceBid)
	s.mux.HandleFunc("POST /v1/revolutions/{revolution_id}/auction-periods/{period_id}/auctions/{auction_id}/settle", s.handleSettleAuction)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeEngineDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrRevolutionNotFound):
		writeEngineError(w, http.StatusNotFound, "revolution_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrUnknownPeriod),
		errors.Is(err, domainerrors.ErrUnknownAuction),
		errors.Is(err, domainerrors.ErrUnknownChoice):
		writeEngineError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domainerrors.ErrAlreadyInitiated),
		errors.Is(err, domainerrors.ErrAlreadyStarted),
		errors.Is(err, domainerrors.ErrAlreadySettled),
		errors.Is(err, domainerrors.ErrDuplicateSubmission),
		errors.Is(err, domainerrors.ErrConflict):
		writeEngineError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domainerrors.ErrNotInitiated),
		errors.Is(err, domainerrors.ErrPeriodClosed),
		errors.Is(err, domainerrors.ErrAuctionNotOpen),
		errors.Is(err, domainerrors.ErrAuctionNotOver),
		errors.Is(err, domainerrors.ErrNoBids):
		writeEngineError(w, http.StatusUnprocessableEntity, "precondition_failed", err.Error())
	case errors.Is(err, domainerrors.ErrRateOutOfRange),
		errors.Is(err, domainerrors.ErrCreatorRateTooLow),
		errors.Is(err, domainerrors.ErrCreatorRateTooHigh),
		errors.Is(err, domainerrors.ErrInvalidInput):
		writeEngineError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeEngineError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeEngineError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, enginehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveCaller(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}

func pathInt(r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(r.PathValue(name))
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}
