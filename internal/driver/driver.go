// internal/driver/driver.go
//
// Solve loop that plays a live puzzle through a Board.
// Responsibilities:
//   - Rebuild the constraint snapshot every turn from the board's evaluated
//     rows plus the words the page refused.
//   - Enter the start word first, then the engine's suggestion.
//   - Erase and ban refused words without spending an attempt.
//   - Stop on a win, after solver.MaxAttempts accepted rows, or when the
//     engine has no candidate left.
//
// Notes:
//   - The board is the source of truth; the driver keeps no feedback of its own.
//   - Iteration is bounded: every refusal bans a dictionary word, so the loop
//     runs at most MaxAttempts + dictionary size times.

package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-buddy/internal/metrics"
	"github.com/robalobadob/wordle-buddy/internal/solver"
)

// ErrBoardStuck is returned when the board keeps unevaluated letters after Erase.
var ErrBoardStuck = errors.New("driver: board still has pending letters after erase")

// Outcome summarizes a finished Solve.
type Outcome struct {
	State    solver.State
	Reason   solver.EndReason
	Attempts []solver.Attempt
	Banned   []string
}

// Driver plays one puzzle on a Board.
type Driver struct {
	engine *solver.Engine
	board  Board
	log    zerolog.Logger
}

// New returns a Driver. Pass zerolog.Nop() to silence it.
func New(e *solver.Engine, b Board, logger zerolog.Logger) *Driver {
	return &Driver{engine: e, board: b, log: logger}
}

// Solve plays until the session ends. A stale tok or a done ctx ends the
// run with solver.ErrSessionAborted.
func (d *Driver) Solve(ctx context.Context, tok solver.Token, start string) (Outcome, error) {
	var banned []string
	last := solver.NewSession()
	limit := solver.MaxAttempts + d.engine.Dictionary().Len()

	for i := 0; i <= limit; i++ {
		if err := ctx.Err(); err != nil {
			return d.finish(last.Abort(), banned), fmt.Errorf("%w: %w", solver.ErrSessionAborted, err)
		}
		if err := tok.Check(); err != nil {
			return d.finish(last.Abort(), banned), err
		}

		s, err := d.session(ctx, banned)
		if err != nil {
			return Outcome{Banned: banned}, err
		}
		if s.Done() {
			return d.finish(s, banned), nil
		}
		last = s

		guess, ok := s.Next(d.engine, start)
		if !ok {
			d.log.Warn().Int("turn", s.Turn()).Msg("no suggestions left")
			return d.finish(s.Exhaust(), banned), nil
		}

		d.log.Info().Int("turn", s.Turn()+1).Str("guess", guess).Msg("entering word")
		if err := d.board.Enter(ctx, guess); err != nil {
			return d.finish(s, banned), fmt.Errorf("enter %q: %w", guess, err)
		}

		pending, err := d.board.Pending(ctx)
		if err != nil {
			return d.finish(s, banned), fmt.Errorf("read board: %w", err)
		}
		if !pending {
			continue
		}

		d.log.Info().Str("word", guess).Msg("word refused, erasing")
		if err := d.board.Erase(ctx); err != nil {
			return d.finish(s, banned), fmt.Errorf("erase %q: %w", guess, err)
		}
		if still, err := d.board.Pending(ctx); err != nil {
			return d.finish(s, banned), fmt.Errorf("read board: %w", err)
		} else if still {
			return d.finish(s, banned), ErrBoardStuck
		}
		banned = append(banned, guess)
	}
	return Outcome{Banned: banned}, fmt.Errorf("driver: gave up after %d iterations", limit)
}

// session folds the board's evaluated rows over an empty session.
func (d *Driver) session(ctx context.Context, banned []string) (solver.Session, error) {
	rows, err := d.board.Rows(ctx)
	if err != nil {
		return solver.Session{}, fmt.Errorf("read board: %w", err)
	}
	s := solver.NewSession()
	for _, w := range banned {
		s = s.Reject(w)
	}
	for _, r := range rows {
		word, fb, ok := r.Evaluated()
		if !ok {
			continue
		}
		if s, err = s.Record(word, fb); err != nil {
			if errors.Is(err, solver.ErrSessionOver) {
				break
			}
			return solver.Session{}, fmt.Errorf("row %q: %w", word, err)
		}
	}
	return s, nil
}

func (d *Driver) finish(s solver.Session, banned []string) Outcome {
	out := Outcome{State: s.State(), Reason: s.Reason(), Attempts: s.Attempts(), Banned: banned}
	if !s.Done() {
		return out
	}
	metrics.Sessions.WithLabelValues("browser", s.State().String()).Inc()
	if s.State() != solver.Aborted {
		metrics.SessionAttempts.WithLabelValues("browser").Observe(float64(s.Turn()))
	}
	d.log.Info().Str("state", s.State().String()).Str("reason", string(s.Reason())).Int("attempts", s.Turn()).Msg("solve finished")
	return out
}
