// internal/solver/engine.go
//
// Candidate selection over a fixed dictionary.
//
// A dictionary word w is a candidate iff all of the following hold:
//   1. w is not banned.
//   2. For every (letter, positions) in correct, w has letter at each position.
//   3. w contains no absent letter.
//   4. For every (letter, except) in present, w contains letter at least once
//      and no occurrence of letter falls on an excepted position.
//
// Among candidates the word with the most distinct letters wins; ties go to
// the word that comes first in dictionary order. The engine holds no mutable
// state and is safe for concurrent use.

package solver

import (
	"math/bits"
	"slices"

	"github.com/robalobadob/wordle-buddy/internal/words"
)

// Engine picks guesses from an immutable dictionary.
type Engine struct {
	dict *words.Dictionary
}

// NewEngine wraps a loaded dictionary.
func NewEngine(d *words.Dictionary) *Engine {
	return &Engine{dict: d}
}

// Dictionary returns the word list the engine selects from.
func (e *Engine) Dictionary() *words.Dictionary { return e.dict }

// Suggest returns the best next guess, or ("", false) when no dictionary word
// satisfies c. An empty result is a terminal signal, not an error.
func (e *Engine) Suggest(c Constraints) (string, bool) {
	best, bestScore := "", -1
	e.dict.Each(func(_ int, w string) bool {
		if !Valid(w, c) {
			return true
		}
		// Strictly greater keeps the earliest word on ties.
		if s := distinctLetters(w); s > bestScore {
			best, bestScore = w, s
			if s == words.Length {
				// Nothing later can beat a word with all letters distinct.
				return false
			}
		}
		return true
	})
	return best, bestScore >= 0
}

// Candidates lists every valid word in selection order: distinct-letter
// count descending, dictionary order within equal counts.
func (e *Engine) Candidates(c Constraints) []string {
	var out []string
	e.dict.Each(func(_ int, w string) bool {
		if Valid(w, c) {
			out = append(out, w)
		}
		return true
	})
	slices.SortStableFunc(out, func(a, b string) int {
		return distinctLetters(b) - distinctLetters(a)
	})
	return out
}

// Valid reports whether w satisfies every constraint in c.
func Valid(w string, c Constraints) bool {
	if !words.IsWord(w) {
		return false
	}
	if c.IsBanned(w) {
		return false
	}
	for l, p := range c.correct {
		for i := 0; i < words.Length; i++ {
			if p.Has(i) && w[i] != l {
				return false
			}
		}
	}
	for i := 0; i < words.Length; i++ {
		if c.IsAbsent(w[i]) {
			return false
		}
	}
	for l, except := range c.present {
		found := false
		for i := 0; i < words.Length; i++ {
			if w[i] != l {
				continue
			}
			if except.Has(i) {
				return false
			}
			found = true
		}
		if !found {
			return false
		}
	}
	return true
}

// distinctLetters counts unique letters in a lowercase word.
func distinctLetters(w string) int {
	var seen uint32
	for i := 0; i < len(w); i++ {
		seen |= 1 << (w[i] - 'a')
	}
	return bits.OnesCount32(seen)
}
