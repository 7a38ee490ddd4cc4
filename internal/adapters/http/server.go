package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	producerpal "github.com/adamjmurray/producer-pal"
	"github.com/adamjmurray/producer-pal/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Engine defines the interface for the duplication core.
type Engine interface {
	Duplicate(ctx context.Context, req domain.DuplicateRequest) ([]domain.Duplicated, error)
	Locators() ([]domain.Locator, error)
	DeleteLocators(ctx context.Context, name string) (int, error)
}

// DuplicateResponse aligns with the MCP adapter: a single copy collapses
// to "result", multiple copies are listed under "results".
type DuplicateResponse struct {
	Result  *domain.Duplicated  `json:"result,omitempty"`
	Results []domain.Duplicated `json:"results,omitempty"`
}

// DeleteLocatorsRequest is the body of POST /locators/delete.
type DeleteLocatorsRequest struct {
	Name string `json:"name"`
}

// DeleteLocatorsResponse reports a locator deletion.
type DeleteLocatorsResponse struct {
	Name    string `json:"name"`
	Deleted int    `json:"deleted"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server implements the JSON API over the engine.
type Server struct {
	Engine Engine
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine) http.Handler {
	server := &Server{Engine: engine}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", server.Health)
	r.Post("/duplicate", server.Duplicate)
	r.Get("/locators", server.Locators)
	r.Post("/locators/delete", server.DeleteLocators)

	return r
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": producerpal.Version,
	})
}

// Duplicate handles POST /duplicate.
func (s *Server) Duplicate(w http.ResponseWriter, r *http.Request) {
	var req domain.DuplicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	results, err := s.Engine.Duplicate(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	resp := DuplicateResponse{Results: results}
	if len(results) == 1 {
		resp = DuplicateResponse{Result: &results[0]}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Locators handles GET /locators.
func (s *Server) Locators(w http.ResponseWriter, r *http.Request) {
	locs, err := s.Engine.Locators()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, locs)
}

// DeleteLocators handles POST /locators/delete.
func (s *Server) DeleteLocators(w http.ResponseWriter, r *http.Request) {
	var req DeleteLocatorsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	deleted, err := s.Engine.DeleteLocators(r.Context(), req.Name)
	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, DeleteLocatorsResponse{Name: req.Name, Deleted: deleted})
}

// statusFor maps engine errors onto HTTP statuses: bad parameters are
// the caller's fault, missing objects are 404, everything else is a
// host-side failure.
func statusFor(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrObjectNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		fmt.Printf("response encode error: %v\n", err)
	}
}
