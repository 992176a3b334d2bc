// internal/game/classify.go
//
// Feedback classification for a guess against a known solution.
// Used by the simulation runner and by tests of the browser driver.

package game

import (
	"errors"
	"strings"

	"github.com/robalobadob/wordle-buddy/internal/words"
)

// ErrInvalidWord is returned when a guess or solution is not 5 letters a–z.
var ErrInvalidWord = errors.New("game: word must be 5 letters a-z")

// Classify implements the standard two‑pass Wordle scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count remaining (non‑correct) solution letters.
//
// Pass 2:
//   - For each non‑correct guess letter: if there is remaining count for that letter,
//     mark present and consume one occurrence; otherwise mark absent.
//
// Inputs are lowercased before comparison.
func Classify(guess, solution string) (Feedback, error) {
	guess = strings.ToLower(strings.TrimSpace(guess))
	solution = strings.ToLower(strings.TrimSpace(solution))
	if !words.IsWord(guess) || !words.IsWord(solution) {
		return Feedback{}, ErrInvalidWord
	}

	var res Feedback
	var counts [26]int

	// First pass: mark hits and collect counts for remaining solution letters.
	for i := 0; i < words.Length; i++ {
		if guess[i] == solution[i] {
			res[i] = MarkCorrect
		} else {
			counts[solution[i]-'a']++
		}
	}

	// Second pass: resolve presents/absents for non‑correct tiles.
	for i := 0; i < words.Length; i++ {
		if res[i] == MarkCorrect {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res, nil
}

// MustClassify is Classify for inputs already known to be valid words.
func MustClassify(guess, solution string) Feedback {
	f, err := Classify(guess, solution)
	if err != nil {
		panic(err)
	}
	return f
}
