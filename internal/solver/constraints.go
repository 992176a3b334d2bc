// internal/solver/constraints.go
//
// Constraint snapshots accumulated over one solving session.
//
// A Constraints value is immutable: every builder returns a new snapshot and
// leaves the receiver untouched, so a session can be checkpointed or abandoned
// at any turn without copying by hand.
//
// Invariants:
//   - A letter in the absent set never has a correct or present entry.
//   - Positions are always in [0,4] (see Positions).
//   - The banned set only grows within a session.

package solver

import (
	"errors"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/robalobadob/wordle-buddy/internal/game"
	"github.com/robalobadob/wordle-buddy/internal/words"
)

// ErrInvalidGuess is returned by Apply for a guess that is not a 5-letter word.
var ErrInvalidGuess = errors.New("solver: guess must be 5 letters a-z")

// Constraints is the feedback accumulated so far: absent letters, letters fixed
// at positions, letters present but excluded from positions, and banned words.
type Constraints struct {
	absent  mapset.Set[byte]
	correct map[byte]Positions
	present map[byte]Positions
	banned  mapset.Set[string]
}

// Empty returns a snapshot with no constraints.
func Empty() Constraints {
	return Constraints{
		absent:  mapset.NewThreadUnsafeSet[byte](),
		correct: map[byte]Positions{},
		present: map[byte]Positions{},
		banned:  mapset.NewThreadUnsafeSet[string](),
	}
}

func (c Constraints) clone() Constraints {
	out := Empty()
	if c.absent != nil {
		out.absent = c.absent.Clone()
	}
	if c.banned != nil {
		out.banned = c.banned.Clone()
	}
	for l, p := range c.correct {
		out.correct[l] = p
	}
	for l, p := range c.present {
		out.present[l] = p
	}
	return out
}

func isLetter(l byte) bool { return l >= 'a' && l <= 'z' }

// known reports whether letter has a correct or present entry.
func (c Constraints) known(l byte) bool {
	_, inCorrect := c.correct[l]
	_, inPresent := c.present[l]
	return inCorrect || inPresent
}

// WithAbsent adds letters to the absent set. Letters that already have a
// correct or present entry are skipped.
func (c Constraints) WithAbsent(letters ...byte) Constraints {
	out := c.clone()
	for _, l := range letters {
		if isLetter(l) && !out.known(l) {
			out.absent.Add(l)
		}
	}
	return out
}

// WithCorrect fixes letter at every position in p.
func (c Constraints) WithCorrect(letter byte, p Positions) Constraints {
	if !isLetter(letter) || p.Empty() {
		return c
	}
	out := c.clone()
	out.correct[letter] = out.correct[letter].Union(p)
	out.absent.Remove(letter)
	return out
}

// WithPresent records that letter occurs in the solution but at none of p.
func (c Constraints) WithPresent(letter byte, p Positions) Constraints {
	if !isLetter(letter) {
		return c
	}
	out := c.clone()
	out.present[letter] = out.present[letter].Union(p)
	out.absent.Remove(letter)
	return out
}

// WithBanned excludes words from every later suggestion.
func (c Constraints) WithBanned(ws ...string) Constraints {
	out := c.clone()
	for _, w := range ws {
		out.banned.Add(w)
	}
	return out
}

// Apply derives the next snapshot from the feedback of one guess.
//
// The guess is banned, correct and present tiles are recorded first, and only
// then are absent tiles resolved: an absent letter that is already correct or
// present somewhere becomes a present-with-exception entry for that tile
// instead of being added to the absent set. This keeps repeated-letter guesses
// like "sassy" from excluding a letter the solution does contain.
func (c Constraints) Apply(guess string, fb game.Feedback) (Constraints, error) {
	if !words.IsWord(guess) {
		return c, fmt.Errorf("%w: %q", ErrInvalidGuess, guess)
	}
	for i, m := range fb {
		if !m.Valid() {
			return c, fmt.Errorf("solver: invalid mark %q at tile %d", m, i)
		}
	}

	out := c.clone()
	out.banned.Add(guess)

	for i, m := range fb {
		l := guess[i]
		switch m {
		case game.MarkCorrect:
			out.correct[l] = out.correct[l].With(i)
			out.absent.Remove(l)
		case game.MarkPresent:
			out.present[l] = out.present[l].With(i)
			out.absent.Remove(l)
		}
	}
	for i, m := range fb {
		if m != game.MarkAbsent {
			continue
		}
		l := guess[i]
		if out.known(l) {
			out.present[l] = out.present[l].With(i)
		} else {
			out.absent.Add(l)
		}
	}
	return out, nil
}

// Absent lists the absent letters in alphabetical order.
func (c Constraints) Absent() []byte {
	if c.absent == nil {
		return nil
	}
	out := c.absent.ToSlice()
	slices.Sort(out)
	return out
}

// IsAbsent reports whether letter is in the absent set.
func (c Constraints) IsAbsent(l byte) bool {
	return c.absent != nil && c.absent.Contains(l)
}

// Correct returns a copy of the letter → fixed positions mapping.
func (c Constraints) Correct() map[byte]Positions { return copyPositions(c.correct) }

// Present returns a copy of the letter → excluded positions mapping.
func (c Constraints) Present() map[byte]Positions { return copyPositions(c.present) }

// Banned lists banned words in alphabetical order.
func (c Constraints) Banned() []string {
	if c.banned == nil {
		return nil
	}
	out := c.banned.ToSlice()
	slices.Sort(out)
	return out
}

// IsBanned reports whether w may no longer be suggested.
func (c Constraints) IsBanned(w string) bool {
	return c.banned != nil && c.banned.Contains(w)
}

func copyPositions(m map[byte]Positions) map[byte]Positions {
	out := make(map[byte]Positions, len(m))
	for l, p := range m {
		out[l] = p
	}
	return out
}
