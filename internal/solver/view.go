// internal/solver/view.go
//
// JSON wire shape of a constraint snapshot, as accepted by /api/suggest and
// the suggest command. Constraints() is the only way in and validates letters
// and tile indexes.

package solver

import (
	"fmt"
	"slices"
	"strings"
)

// View is the wire shape of a Constraints snapshot: letters are one-character
// strings and positions are zero-based tile indexes.
type View struct {
	Absent  []string         `json:"absent"`
	Correct map[string][]int `json:"correct"`
	Present map[string][]int `json:"present"`
	Banned  []string         `json:"banned"`
}

// View converts the snapshot to its wire shape.
func (c Constraints) View() View {
	v := View{
		Absent:  []string{},
		Correct: map[string][]int{},
		Present: map[string][]int{},
		Banned:  c.Banned(),
	}
	if v.Banned == nil {
		v.Banned = []string{}
	}
	for _, l := range c.Absent() {
		v.Absent = append(v.Absent, string(l))
	}
	for l, p := range c.correct {
		v.Correct[string(l)] = p.Slice()
	}
	for l, p := range c.present {
		v.Present[string(l)] = p.Slice()
	}
	return v
}

// Constraints validates the view and builds a snapshot from it.
// Correct and present entries are applied before absent letters so the
// absent-set invariant holds regardless of input.
func (v View) Constraints() (Constraints, error) {
	c := Empty()

	for _, key := range sortedKeys(v.Correct) {
		l, err := parseLetter(key)
		if err != nil {
			return c, fmt.Errorf("correct: %w", err)
		}
		p, err := NewPositions(v.Correct[key]...)
		if err != nil {
			return c, fmt.Errorf("correct %q: %w", key, err)
		}
		c = c.WithCorrect(l, p)
	}
	for _, key := range sortedKeys(v.Present) {
		l, err := parseLetter(key)
		if err != nil {
			return c, fmt.Errorf("present: %w", err)
		}
		p, err := NewPositions(v.Present[key]...)
		if err != nil {
			return c, fmt.Errorf("present %q: %w", key, err)
		}
		c = c.WithPresent(l, p)
	}
	for _, key := range v.Absent {
		l, err := parseLetter(key)
		if err != nil {
			return c, fmt.Errorf("absent: %w", err)
		}
		c = c.WithAbsent(l)
	}
	banned := make([]string, 0, len(v.Banned))
	for _, w := range v.Banned {
		banned = append(banned, strings.ToLower(strings.TrimSpace(w)))
	}
	return c.WithBanned(banned...), nil
}

func parseLetter(s string) (byte, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 1 || !isLetter(s[0]) {
		return 0, fmt.Errorf("invalid letter %q", s)
	}
	return s[0], nil
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
