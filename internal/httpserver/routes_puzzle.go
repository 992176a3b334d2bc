// internal/httpserver/routes_puzzle.go
//
// Puzzle data proxy routes:
//   - GET /api/words  → the dictionary as a JSON array, in dictionary order
//   - GET /api/{date} → the upstream puzzle payload for YYYY-MM-DD, relayed verbatim
//
// Malformed dates are rejected before any upstream call. Every upstream
// failure (network, non-2xx, undecodable body) is reported as one generic 500.

package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-buddy/internal/puzzle"
)

const (
	msgInvalidDate = "Invalid date format. Expected YYYY-MM-DD"
	msgFetchFailed = "Failed to fetch wordle data"
)

// mountPuzzle registers the proxy routes. Static /api/words wins over /api/{date}.
func (s *Server) mountPuzzle(r chi.Router) {
	r.Get("/api/words", s.handleWords)
	r.Get("/api/{date}", s.handlePuzzle)
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, s.engine.Dictionary())
}

func (s *Server) handlePuzzle(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	payload, err := s.puzzles.Fetch(r.Context(), date)
	switch {
	case errors.Is(err, puzzle.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, msgInvalidDate)
		return
	case err != nil:
		log.Error().Err(err).Str("date", date).Msg("puzzle fetch failed")
		writeError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
