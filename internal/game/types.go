// internal/game/types.go
//
// Core type definitions shared by the classifier, the solver and the drivers.
// Defines:
//   - Mark: per-tile result of a guess (correct/present/absent).
//   - Feedback: the fixed-length marks for one guess.

package game

import "github.com/robalobadob/wordle-buddy/internal/words"

// Mark represents the evaluation result for a single tile in a guess.
// The string values match the data-state attribute the puzzle page renders:
//   - "correct": letter is in the solution at this position.
//   - "present": letter is in the solution at a different position.
//   - "absent":  no unconsumed occurrence of the letter remains in the solution.
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// Valid reports whether m is one of the three known marks.
func (m Mark) Valid() bool {
	switch m {
	case MarkCorrect, MarkPresent, MarkAbsent:
		return true
	}
	return false
}

// rank orders marks by how much they reveal; used by the keyboard.
func (m Mark) rank() int {
	switch m {
	case MarkCorrect:
		return 3
	case MarkPresent:
		return 2
	case MarkAbsent:
		return 1
	}
	return 0
}

// Feedback is the per-position classification of one guess.
type Feedback [words.Length]Mark

// Solved reports whether every tile is correct.
func (f Feedback) Solved() bool {
	for _, m := range f {
		if m != MarkCorrect {
			return false
		}
	}
	return true
}

// String renders the feedback as a compact pattern: G (correct), Y (present), . (absent).
func (f Feedback) String() string {
	b := make([]byte, len(f))
	for i, m := range f {
		switch m {
		case MarkCorrect:
			b[i] = 'G'
		case MarkPresent:
			b[i] = 'Y'
		default:
			b[i] = '.'
		}
	}
	return string(b)
}
