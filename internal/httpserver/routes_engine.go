// internal/httpserver/routes_engine.go
//
// Engine routes:
//   - POST /api/suggest  → next guess for a constraint snapshot
//   - POST /api/simulate → full simulated session against a day's solution
//
// Each simulation request gets its own generation; the request context
// cancels it when the client goes away.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-buddy/internal/metrics"
	"github.com/robalobadob/wordle-buddy/internal/puzzle"
	"github.com/robalobadob/wordle-buddy/internal/simulate"
	"github.com/robalobadob/wordle-buddy/internal/solver"
)

const maxBody = 64 << 10

// mountEngine registers the engine routes.
func (s *Server) mountEngine(r chi.Router) {
	r.Post("/api/suggest", s.handleSuggest)
	r.Post("/api/simulate", s.handleSimulate)
}

type suggestRes struct {
	Word       *string     `json:"word"` // null when no candidate is left
	Found      bool        `json:"found"`
	Candidates int         `json:"candidates"`
	Applied    solver.View `json:"constraints"`
}

// handleSuggest validates the snapshot and returns the engine's pick.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var body solver.View
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	c, err := body.Constraints()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := suggestRes{Applied: c.View()}
	if word, ok := s.engine.Suggest(c); ok {
		res.Word, res.Found = &word, true
		res.Candidates = len(s.engine.Candidates(c))
		metrics.Suggestions.WithLabelValues("found").Inc()
	} else {
		metrics.Suggestions.WithLabelValues("none").Inc()
	}
	writeJSON(w, http.StatusOK, res)
}

type simulateReq struct {
	StartWord string `json:"startWord"`
	Date      string `json:"date"` // defaults to today
}

// handleSimulate runs one session synchronously and returns the result.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var body simulateReq
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if body.Date == "" {
		body.Date = puzzle.Today(0)
	}

	var gens solver.Generations
	res, err := s.runner.Run(r.Context(), gens.Begin(), simulate.Request{
		StartWord: body.StartWord,
		Date:      body.Date,
	}, nil)

	var upstream *puzzle.UpstreamError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, solver.ErrInvalidStartWord):
		writeError(w, http.StatusBadRequest, res.Message)
	case errors.Is(err, puzzle.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, msgInvalidDate)
	case errors.As(err, &upstream), errors.Is(err, puzzle.ErrInvalidSolution):
		log.Error().Err(err).Str("date", body.Date).Msg("simulation fetch failed")
		writeError(w, http.StatusInternalServerError, msgFetchFailed)
	case errors.Is(err, solver.ErrSessionAborted):
		writeError(w, http.StatusServiceUnavailable, simulate.MsgAborted)
	default:
		log.Error().Err(err).Msg("simulation failed")
		writeError(w, http.StatusInternalServerError, "simulation_failed")
	}
}
