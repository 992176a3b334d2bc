// internal/simulate/runner.go
//
// In-process simulation of a solving session against a known solution.
// Responsibilities:
//   - Validate the start word before any other work.
//   - Resolve the solution (given directly, or fetched by date from a SolutionSource).
//   - Play at most solver.MaxAttempts turns, revealing tiles one by one and
//     keeping the keyboard status current.
//   - Publish progress to an Observer while the run's token is current.
//
// Notes:
//   - The token and ctx are checked before every state mutation. Once either
//     is invalid the run stops, publishes nothing more and returns
//     solver.ErrSessionAborted.
//   - Delays are optional; zero delays make a run synchronous (tests, HTTP).

package simulate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-buddy/internal/game"
	"github.com/robalobadob/wordle-buddy/internal/metrics"
	"github.com/robalobadob/wordle-buddy/internal/solver"
	"github.com/robalobadob/wordle-buddy/internal/words"
)

// User-facing status messages.
const (
	MsgFetching  = "Fetching today's solution..."
	MsgSolving   = "Solving..."
	MsgNoneLeft  = "No suggestions left"
	MsgOutOfTurn = "Failed to solve within 6 attempts."
	MsgAborted   = "Aborted"
)

// SolvedMessage is the message for a win after n attempts.
func SolvedMessage(n int) string { return fmt.Sprintf("Solved in %d attempts!", n) }

// SolutionSource resolves the solution of the puzzle published for date.
// *puzzle.Client satisfies it.
type SolutionSource interface {
	Solution(ctx context.Context, date string) (string, error)
}

// Request selects what to simulate. Solution wins over Date when both are set.
type Request struct {
	StartWord string
	Date      string
	Solution  string
}

// Options tunes a Runner.
type Options struct {
	RevealDelay time.Duration // pause before each tile is revealed
	RowDelay    time.Duration // pause between rows
	Logger      zerolog.Logger
}

// Result is the outcome of one run.
type Result struct {
	ID        string               `json:"id"`
	StartWord string               `json:"startWord"`
	Date      string               `json:"date,omitempty"`
	Solution  string               `json:"solution"`
	State     string               `json:"state"`
	Reason    solver.EndReason     `json:"reason"`
	Message   string               `json:"message"`
	Attempts  []solver.Attempt     `json:"attempts"`
	Keyboard  map[string]game.Mark `json:"keyboard"`
}

// Runner plays simulated sessions. It is safe for concurrent use; each Run
// owns its own session state.
type Runner struct {
	engine *solver.Engine
	source SolutionSource
	opts   Options
}

// NewRunner builds a Runner. source may be nil when every Request carries a Solution.
func NewRunner(e *solver.Engine, source SolutionSource, opts Options) *Runner {
	return &Runner{engine: e, source: source, opts: opts}
}

// Run plays one session. obs may be nil.
func (r *Runner) Run(ctx context.Context, tok solver.Token, req Request, obs Observer) (Result, error) {
	if obs == nil {
		obs = Discard
	}
	res := Result{ID: uuid.NewString(), Date: req.Date}
	logger := r.opts.Logger.With().Str("session", res.ID).Logger()

	start, err := solver.ValidateStartWord(r.engine.Dictionary(), req.StartWord)
	if err != nil {
		res.Message = err.Error()
		return res, err
	}
	res.StartWord = start

	live := func() error {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", solver.ErrSessionAborted, err)
		}
		return tok.Check()
	}
	abort := func(err error) (Result, error) {
		res.State, res.Reason, res.Message = solver.Aborted.String(), solver.ReasonAborted, MsgAborted
		metrics.Sessions.WithLabelValues("simulate", solver.Aborted.String()).Inc()
		logger.Info().Msg("simulation aborted")
		return res, err
	}

	solution, err := r.solution(ctx, req, obs)
	if err != nil {
		if errors.Is(err, solver.ErrSessionAborted) || live() != nil {
			return abort(solver.ErrSessionAborted)
		}
		res.Message = "Failed: " + err.Error()
		obs.Observe(Event{Kind: EventMessage, Message: res.Message})
		return res, err
	}
	// A reset during the fetch abandons this run.
	if err := live(); err != nil {
		return abort(err)
	}
	res.Solution = solution
	obs.Observe(Event{Kind: EventMessage, Message: MsgSolving})
	logger.Debug().Str("start", start).Msg("simulation started")

	s := solver.NewSession()
	kb := game.Keyboard{}
	for !s.Done() {
		if err := live(); err != nil {
			return abort(err)
		}
		guess, ok := s.Next(r.engine, start)
		if !ok {
			s = s.Exhaust()
			break
		}
		fb := game.MustClassify(guess, solution)
		row := s.Turn()
		obs.Observe(Event{Kind: EventAttempt, Row: row, Word: guess})

		for i, m := range fb {
			if err := sleep(ctx, r.opts.RevealDelay); err != nil {
				return abort(fmt.Errorf("%w: %w", solver.ErrSessionAborted, err))
			}
			if err := live(); err != nil {
				return abort(err)
			}
			obs.Observe(Event{Kind: EventReveal, Row: row, Index: i, Word: guess, Mark: m})
			if next := kb.Update(guess[i], m); next[guess[i]] != kb[guess[i]] {
				kb = next
				obs.Observe(Event{Kind: EventKey, Letter: string(guess[i]), Mark: m})
			}
		}

		if s, err = s.Record(guess, fb); err != nil {
			return res, err
		}
		logger.Debug().Int("row", row).Str("guess", guess).Stringer("feedback", fb).Msg("attempt")

		if !s.Done() {
			if err := sleep(ctx, r.opts.RowDelay); err != nil {
				return abort(fmt.Errorf("%w: %w", solver.ErrSessionAborted, err))
			}
		}
	}

	res.State, res.Reason = s.State().String(), s.Reason()
	res.Attempts = s.Attempts()
	res.Keyboard = keyboardJSON(kb)
	switch s.Reason() {
	case solver.ReasonSolved:
		res.Message = SolvedMessage(s.Turn())
	case solver.ReasonExhausted:
		res.Message = MsgNoneLeft
	default:
		res.Message = MsgOutOfTurn
	}
	obs.Observe(Event{Kind: EventMessage, Message: res.Message})

	metrics.Sessions.WithLabelValues("simulate", res.State).Inc()
	metrics.SessionAttempts.WithLabelValues("simulate").Observe(float64(s.Turn()))
	logger.Info().Str("state", res.State).Int("attempts", s.Turn()).Msg("simulation finished")
	return res, nil
}

func (r *Runner) solution(ctx context.Context, req Request, obs Observer) (string, error) {
	if req.Solution != "" {
		s := strings.ToLower(strings.TrimSpace(req.Solution))
		if !words.IsWord(s) {
			return "", fmt.Errorf("solution %q: %w", req.Solution, game.ErrInvalidWord)
		}
		return s, nil
	}
	if r.source == nil {
		return "", errors.New("simulate: no solution source configured")
	}
	obs.Observe(Event{Kind: EventMessage, Message: MsgFetching})
	return r.source.Solution(ctx, req.Date)
}

func keyboardJSON(kb game.Keyboard) map[string]game.Mark {
	out := make(map[string]game.Mark, len(kb))
	for l, m := range kb {
		out[string(l)] = m
	}
	return out
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
