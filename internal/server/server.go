// Package server exposes the greeks engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/oklog/ulid/v2"

	greeks "github.com/contactkeval/option-greeks"
	"github.com/contactkeval/option-greeks/internal/logger"
)

// Server routes solve requests to the engine. It holds no mutable
// state beyond the router, so one instance serves concurrent requests.
type Server struct {
	router *mux.Router
}

// solveRequest is the POST /v1/greeks body: an Option plus the solve
// mode ("auto" is the default, "fast" selects the approximate IV path).
type solveRequest struct {
	greeks.Option
	Mode string `json:"mode,omitempty"`
}

type solveResponse struct {
	RequestID string        `json:"request_id"`
	Option    greeks.Option `json:"option"`
}

type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

// New constructs the server and its routes.
func New() *Server {
	s := &Server{router: mux.NewRouter()}
	s.router.HandleFunc("/v1/greeks", s.handleSolve).Methods(http.MethodPost)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe blocks serving requests on addr.
func (s *Server) ListenAndServe(addr string) error {
	logger.Infof("listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	id := ulid.Make().String()

	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, id, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	logger.Debugf("[%s] solve mode=%s kind=%s strike=%.4f", id, req.Mode, req.Kind, req.Strike)

	var (
		solved greeks.Option
		err    error
	)
	switch req.Mode {
	case "", "auto":
		solved, err = greeks.Auto(req.Option)
	case "fast":
		solved, err = greeks.Fast(req.Option)
	default:
		writeError(w, id, http.StatusBadRequest, "mode must be auto or fast")
		return
	}

	if err != nil {
		logger.Errorf("[%s] solve failed: %v", id, err)
		switch {
		case errors.Is(err, greeks.ErrInvalidInput):
			writeError(w, id, http.StatusBadRequest, err.Error())
		case errors.Is(err, greeks.ErrNonConvergence):
			writeError(w, id, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, id, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(solveResponse{RequestID: id, Option: solved})
}

func writeError(w http.ResponseWriter, id string, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{RequestID: id, Error: msg})
}
