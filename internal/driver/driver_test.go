package driver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-buddy/internal/game"
	"github.com/robalobadob/wordle-buddy/internal/solver"
	"github.com/robalobadob/wordle-buddy/internal/words"
)

// fakeBoard is an in-memory puzzle page. Words outside accepted stay pending
// the way the real page leaves refused words in "tbd".
type fakeBoard struct {
	solution string
	accepted map[string]bool
	rows     []Row
	pending  string
	entered  []string
	erases   int
	stuck    bool
	onEnter  func(word string)
}

func newFakeBoard(solution string, accepted ...string) *fakeBoard {
	b := &fakeBoard{solution: solution, accepted: map[string]bool{}}
	for _, w := range accepted {
		b.accepted[w] = true
	}
	return b
}

func (b *fakeBoard) Rows(context.Context) ([]Row, error) {
	out := append([]Row(nil), b.rows...)
	if b.pending != "" {
		var r Row
		for i := range r {
			r[i] = Tile{Letter: b.pending[i], State: TileTBD}
		}
		out = append(out, r)
	}
	for len(out) < solver.MaxAttempts {
		var r Row
		for i := range r {
			r[i].State = TileEmpty
		}
		out = append(out, r)
	}
	return out, nil
}

func (b *fakeBoard) Enter(_ context.Context, word string) error {
	b.entered = append(b.entered, word)
	if b.onEnter != nil {
		b.onEnter(word)
	}
	if !b.accepted[word] {
		b.pending = word
		return nil
	}
	fb := game.MustClassify(word, b.solution)
	var r Row
	for i, m := range fb {
		r[i] = Tile{Letter: word[i], State: TileState(m)}
	}
	b.rows = append(b.rows, r)
	return nil
}

func (b *fakeBoard) Erase(context.Context) error {
	b.erases++
	if !b.stuck {
		b.pending = ""
	}
	return nil
}

func (b *fakeBoard) Pending(context.Context) (bool, error) { return b.pending != "", nil }

func engine(t *testing.T, ws ...string) *solver.Engine {
	t.Helper()
	var d *words.Dictionary
	var err error
	if len(ws) == 0 {
		d, err = words.Load()
	} else {
		d, err = words.New(ws)
	}
	require.NoError(t, err)
	return solver.NewEngine(d)
}

func TestSolve_Wins(t *testing.T) {
	e := engine(t)
	board := newFakeBoard("crane", e.Dictionary().Words()...)
	var g solver.Generations

	out, err := New(e, board, zerolog.Nop()).Solve(context.Background(), g.Begin(), "stare")
	require.NoError(t, err)
	assert.Equal(t, solver.Won, out.State)
	assert.Equal(t, solver.ReasonSolved, out.Reason)
	assert.Equal(t, "stare", board.entered[0])
	assert.Equal(t, "crane", board.entered[len(board.entered)-1])
	assert.LessOrEqual(t, len(out.Attempts), solver.MaxAttempts)
	assert.Empty(t, out.Banned)
}

func TestSolve_RefusedWordIsErasedAndBanned(t *testing.T) {
	e := engine(t, "crane", "stare", "trace")
	// The page does not know "crane".
	board := newFakeBoard("trace", "stare", "trace")
	var g solver.Generations

	out, err := New(e, board, zerolog.Nop()).Solve(context.Background(), g.Begin(), "crane")
	require.NoError(t, err)
	assert.Equal(t, solver.Won, out.State)
	assert.Equal(t, []string{"crane"}, out.Banned)
	assert.Equal(t, 1, board.erases)
	assert.NotContains(t, board.entered[1:], "crane", "a banned word is never retried")
	for _, a := range out.Attempts {
		assert.NotEqual(t, "crane", a.Word, "refusals do not spend attempts")
	}
}

func TestSolve_LosesAfterSixAcceptedRows(t *testing.T) {
	ws := []string{"fight", "light", "might", "night", "right", "sight", "tight", "wight"}
	e := engine(t, ws...)
	board := newFakeBoard("wight", ws...)
	var g solver.Generations

	out, err := New(e, board, zerolog.Nop()).Solve(context.Background(), g.Begin(), "fight")
	require.NoError(t, err)
	assert.Equal(t, solver.Lost, out.State)
	assert.Equal(t, solver.ReasonBudget, out.Reason)
	assert.Len(t, out.Attempts, solver.MaxAttempts)
	assert.Len(t, board.entered, solver.MaxAttempts)
}

func TestSolve_NoCandidateEndsRun(t *testing.T) {
	e := engine(t, "crane", "stare")
	board := newFakeBoard("stork", "crane", "stare")
	var g solver.Generations

	out, err := New(e, board, zerolog.Nop()).Solve(context.Background(), g.Begin(), "crane")
	require.NoError(t, err)
	assert.Equal(t, solver.Lost, out.State)
	assert.Equal(t, solver.ReasonExhausted, out.Reason)
}

func TestSolve_EverythingRefused(t *testing.T) {
	e := engine(t, "crane", "stare", "trace")
	board := newFakeBoard("trace")
	var g solver.Generations

	out, err := New(e, board, zerolog.Nop()).Solve(context.Background(), g.Begin(), "crane")
	require.NoError(t, err)
	assert.Equal(t, solver.ReasonExhausted, out.Reason)
	assert.ElementsMatch(t, []string{"crane", "stare", "trace"}, out.Banned)
	assert.Empty(t, out.Attempts)
}

func TestSolve_StuckBoard(t *testing.T) {
	e := engine(t, "crane", "stare")
	board := newFakeBoard("stare")
	board.stuck = true
	var g solver.Generations

	_, err := New(e, board, zerolog.Nop()).Solve(context.Background(), g.Begin(), "crane")
	assert.ErrorIs(t, err, ErrBoardStuck)
}

func TestSolve_ResumesFromExistingRows(t *testing.T) {
	e := engine(t)
	board := newFakeBoard("crane", e.Dictionary().Words()...)
	require.NoError(t, board.Enter(context.Background(), "stare"))
	board.entered = nil
	var g solver.Generations

	out, err := New(e, board, zerolog.Nop()).Solve(context.Background(), g.Begin(), "stare")
	require.NoError(t, err)
	assert.Equal(t, solver.Won, out.State)
	assert.NotEqual(t, "stare", board.entered[0], "start word only applies to an empty board")
	assert.Equal(t, "stare", out.Attempts[0].Word)
}

func TestSolve_AbortedBySupersedingGeneration(t *testing.T) {
	e := engine(t)
	board := newFakeBoard("crane", e.Dictionary().Words()...)
	var g solver.Generations
	tok := g.Begin()
	board.onEnter = func(string) { g.Cancel() }

	out, err := New(e, board, zerolog.Nop()).Solve(context.Background(), tok, "stare")
	assert.ErrorIs(t, err, solver.ErrSessionAborted)
	assert.Equal(t, solver.Aborted, out.State)
	assert.Len(t, board.entered, 1)
}

func TestSolve_ContextCancelled(t *testing.T) {
	e := engine(t)
	board := newFakeBoard("crane", e.Dictionary().Words()...)
	var g solver.Generations
	ctx, cancel := context.WithCancel(context.Background())
	board.onEnter = func(string) { cancel() }

	_, err := New(e, board, zerolog.Nop()).Solve(ctx, g.Begin(), "stare")
	assert.ErrorIs(t, err, solver.ErrSessionAborted)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRowEvaluated(t *testing.T) {
	r := Row{
		{Letter: 's', State: TileAbsent},
		{Letter: 't', State: TileAbsent},
		{Letter: 'a', State: TileCorrect},
		{Letter: 'r', State: TilePresent},
		{Letter: 'e', State: TileCorrect},
	}
	w, fb, ok := r.Evaluated()
	require.True(t, ok)
	assert.Equal(t, "stare", w)
	assert.Equal(t, game.MustClassify("stare", "crane"), fb)

	r[1].State = TileTBD
	_, _, ok = r.Evaluated()
	assert.False(t, ok)

	var empty Row
	_, _, ok = empty.Evaluated()
	assert.False(t, ok)
}

func TestFakeClockScript(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := FakeClockScript(at)
	assert.Contains(t, s, "const now = 1709251200000;")
	assert.Contains(t, s, "window.__clock")
	assert.NotContains(t, s, "class FakeDate", "Date() without new must not throw")
	assert.Contains(t, s, "if (!new.target) { return new RealDate(now).toString(); }")
	for _, static := range []string{"FakeDate.prototype = RealDate.prototype;", "FakeDate.UTC = RealDate.UTC;", "FakeDate.parse = RealDate.parse;", "FakeDate.now = () => now;"} {
		assert.Contains(t, s, static)
	}
	assert.True(t, strings.HasPrefix(s, "(() => {"))
	assert.Contains(t, restoreDateScript, "__clock.restore()")
}
