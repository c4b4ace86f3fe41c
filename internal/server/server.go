package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"PeerLens/internal/compare"
	"PeerLens/internal/summary"
)

// Server exposes the comparison view as a JSON API.
type Server struct {
	view *compare.View
	http *http.Server
}

// New builds the server around a compare view.
func New(addr string, view *compare.View) *Server {
	s := &Server{view: view}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/api/compare", s.handleCompare)
	mux.HandleFunc("/api/compare/summary", s.handleSummary)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe blocks until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	log.Printf("[INFO] http server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCompare decodes the restorable descriptor from the query parameters,
// applies it to the view (cancelling any superseded in-flight fetch), and
// returns the fully recomputed snapshot. A fetch failure is reported inside
// the snapshot, not as an HTTP error, so the client keeps its last data.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap, err := s.view.Restore(r.Context(), r.URL.Query())
	if err != nil {
		if errors.Is(err, compare.ErrSuperseded) {
			// A newer request took over; this resolution is not rendered.
			http.Error(w, "superseded by a newer request", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleSummary returns only the summary table, optionally sorted by the
// sort/dir parameters.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap, err := s.view.Restore(r.Context(), r.URL.Query())
	if err != nil {
		if errors.Is(err, compare.ErrSuperseded) {
			http.Error(w, "superseded by a newer request", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rows := snap.Summary
	if col := r.URL.Query().Get("sort"); col != "" {
		if !summary.ValidColumn(col) {
			http.Error(w, "unknown sort column: "+col, http.StatusBadRequest)
			return
		}
		summary.SortRows(rows, col, r.URL.Query().Get("dir") == "desc")
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state":   snap.State,
		"error":   snap.Error,
		"query":   snap.Query,
		"summary": rows,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[WARN] write response: %v", err)
	}
}
