// Package api exposes a core.Repository as the zenus REST API.
//
// Every route maps to exactly one repository operation. Storage failures,
// including a missing note on archive/unarchive, answer 500. Request bodies
// that are not valid JSON answer 400.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/zenus/pkg/core"
)

// maxBodySize bounds request bodies; notes are small text blocks.
const maxBodySize = 10 << 20

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-ID"

type Server struct {
	mux  *http.ServeMux
	repo core.Repository
	log  *slog.Logger
	auth AuthFunc
}

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.log = logger
		}
	}
}

// AuthFunc rejects a request by returning an error.
type AuthFunc func(*http.Request) error

func WithAuth(auth AuthFunc) Option {
	return func(s *Server) {
		if auth != nil {
			s.auth = auth
		}
	}
}

// WithToken requires the literal Authorization header to equal token.
// An empty token leaves the server open.
func WithToken(token string) Option {
	return func(s *Server) {
		if token != "" {
			s.auth = TokenAuth(token)
		}
	}
}

func defaultAuth(*http.Request) error {
	return nil
}

func New(repo core.Repository, opts ...Option) *Server {
	s := &Server{
		mux:  http.NewServeMux(),
		repo: repo,
		log:  slog.Default(),
		auth: defaultAuth,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /notes", s.handleList(core.Active))
	s.mux.HandleFunc("POST /notes", s.handlePut)
	s.mux.HandleFunc("GET /notes/archive", s.handleList(core.Archived))
	s.mux.HandleFunc("POST /notes/reorder", s.handleReorder)
	s.mux.HandleFunc("DELETE /notes/{id}", s.handleDelete(core.Active))
	s.mux.HandleFunc("POST /notes/{id}/archive", s.handleArchive)
	s.mux.HandleFunc("DELETE /notes/{id}/archive", s.handleDelete(core.Archived))
	s.mux.HandleFunc("POST /notes/{id}/unarchive", s.handleUnarchive)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, requestID)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	log := s.log.With("request_id", requestID, "method", r.Method, "path", r.URL.Path)

	if err := s.auth(r); err != nil {
		log.Warn("authentication failed", "error", err)
		http.Error(rec, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	s.mux.ServeHTTP(rec, r)
	log.Debug("request served", "status", rec.status, "duration", time.Since(start))
}

func (s *Server) handleList(p core.Partition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notes, err := s.repo.List(r.Context(), p)
		if err != nil {
			s.fail(w, r, "list", err)
			return
		}
		if notes == nil {
			notes = []core.NoteBlock{}
		}
		writeJSON(w, http.StatusOK, notes)
	}
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	var note core.NoteBlock
	if err := readJSON(r, &note); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.repo.Put(r.Context(), note); err != nil {
		s.fail(w, r, "put", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDelete(p core.Partition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.repo.Delete(r.Context(), r.PathValue("id"), p); err != nil {
			s.fail(w, r, "delete", err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Archive(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, "archive", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleUnarchive(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Unarchive(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, "unarchive", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	var updates []core.OrderUpdate
	if err := readJSON(r, &updates); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.repo.Reorder(r.Context(), updates); err != nil {
		s.fail(w, r, "reorder", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// fail answers 500 for any storage error.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.log.Error("operation failed", "op", op, "path", r.URL.Path, "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func readJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}

// statusRecorder remembers the status code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
