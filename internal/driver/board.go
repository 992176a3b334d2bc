package driver

import (
	"context"
	"strings"

	"github.com/robalobadob/wordle-buddy/internal/game"
	"github.com/robalobadob/wordle-buddy/internal/words"
)

// TileState is the data-state attribute of a rendered tile.
type TileState string

const (
	TileEmpty   TileState = "empty"
	TileTBD     TileState = "tbd" // typed but not yet evaluated
	TileCorrect TileState = "correct"
	TilePresent TileState = "present"
	TileAbsent  TileState = "absent"
)

// Mark converts an evaluated state into a game mark. ok is false for empty and tbd.
func (s TileState) Mark() (game.Mark, bool) {
	switch s {
	case TileCorrect:
		return game.MarkCorrect, true
	case TilePresent:
		return game.MarkPresent, true
	case TileAbsent:
		return game.MarkAbsent, true
	}
	return "", false
}

// Tile is one cell of the board.
type Tile struct {
	Letter byte
	State  TileState
}

// Row is one line of tiles as rendered on the page.
type Row [words.Length]Tile

// Evaluated returns the word and feedback of a fully evaluated row.
func (r Row) Evaluated() (string, game.Feedback, bool) {
	var b strings.Builder
	var fb game.Feedback
	for i, t := range r {
		m, ok := t.State.Mark()
		if !ok || t.Letter < 'a' || t.Letter > 'z' {
			return "", game.Feedback{}, false
		}
		b.WriteByte(t.Letter)
		fb[i] = m
	}
	return b.String(), fb, true
}

// Board is the page as seen by the driver. Implementations talk to a real
// browser or, in tests, to an in-memory puzzle.
type Board interface {
	// Rows returns every row in top-to-bottom order, including empty ones.
	Rows(ctx context.Context) ([]Row, error)
	// Enter types word, submits it and waits for the board to settle.
	Enter(ctx context.Context, word string) error
	// Erase deletes the letters of the current, unsubmitted row.
	Erase(ctx context.Context) error
	// Pending reports whether typed letters are still unevaluated, which
	// after Enter means the page refused the word.
	Pending(ctx context.Context) (bool, error)
}
