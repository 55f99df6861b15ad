// Package server is a development implementation of the remote record
// API: an in-memory, single-kind record store over HTTP. It exists so
// the client can be exercised end to end without a hosted backend.
package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gvpusca/profilesync/internal/profile"
	"github.com/gvpusca/profilesync/internal/store"
)

// Server holds the record table and implements the HTTP handlers the
// httpstore client talks to.
type Server struct {
	mu      sync.Mutex
	records map[profile.ProfileID]store.Record
	status  store.AccountStatus
	now     func() time.Time
	log     zerolog.Logger
}

// New returns a Server reporting the given account status.
func New(status store.AccountStatus) *Server {
	return &Server{
		records: make(map[profile.ProfileID]store.Record),
		status:  status,
		now:     time.Now,
		log:     log.With().Str("component", "server").Logger(),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/v1/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/v1/records", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/v1/records", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/v1/records/{id}", s.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/v1/records/{id}", s.handlePut).Methods(http.MethodPut)
	r.HandleFunc("/v1/records/{id}", s.handleDelete).Methods(http.MethodDelete)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

// ListenAndServe blocks serving the record API on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info().Str("addr", addr).Msg("record store listening")
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status := s.status
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": status.Label()})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := profile.ProfileID(mux.Vars(r)["id"])
	s.mu.Lock()
	rec, ok := s.records[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	id := profile.ProfileID(mux.Vars(r)["id"])
	rec, ok := decodeRecord(w, r)
	if !ok {
		return
	}
	rec.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[id]; !exists {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	rec.Modified = s.now()
	s.records[id] = rec
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	rec, ok := decodeRecord(w, r)
	if !ok {
		return
	}
	if rec.ID == "" {
		http.Error(w, "record id is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; exists {
		http.Error(w, "record already exists", http.StatusConflict)
		return
	}
	rec.Modified = s.now()
	s.records[rec.ID] = rec
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")

	s.mu.Lock()
	recs := make([]store.Record, 0, len(s.records))
	for _, rec := range s.records {
		if kind == "" || rec.Kind == kind {
			recs = append(recs, rec)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string][]store.Record{"records": recs})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := profile.ProfileID(mux.Vars(r)["id"])

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[id]; !exists {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	delete(s.records, id)
	w.WriteHeader(http.StatusNoContent)
}

func decodeRecord(w http.ResponseWriter, r *http.Request) (store.Record, bool) {
	var rec store.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "malformed record body", http.StatusBadRequest)
		return store.Record{}, false
	}
	return rec, true
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
