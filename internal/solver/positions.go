// internal/solver/positions.go
//
// Positions is a set of tile indexes kept as a 5-bit mask.
// Bits outside 0-4 are never set.

package solver

import (
	"encoding/json"
	"fmt"

	"github.com/robalobadob/wordle-buddy/internal/words"
)

// Positions is a set of tile indexes in [0, words.Length).
// Bits outside that range are never set.
type Positions uint8

const allPositions = Positions(1<<words.Length - 1)

// NewPositions builds a set from zero-based tile indexes.
func NewPositions(idx ...int) (Positions, error) {
	var p Positions
	for _, i := range idx {
		if i < 0 || i >= words.Length {
			return 0, fmt.Errorf("position %d out of range [0,%d]", i, words.Length-1)
		}
		p |= 1 << i
	}
	return p, nil
}

// Has reports whether tile i is in the set.
func (p Positions) Has(i int) bool {
	return i >= 0 && i < words.Length && p&(1<<i) != 0
}

// With returns p plus tile i; out-of-range indexes are ignored.
func (p Positions) With(i int) Positions {
	if i < 0 || i >= words.Length {
		return p
	}
	return p | 1<<i
}

// Union returns the tiles in either set.
func (p Positions) Union(o Positions) Positions { return (p | o) & allPositions }

// Empty reports whether no tile is set.
func (p Positions) Empty() bool { return p == 0 }

// Slice lists the tiles in ascending order.
func (p Positions) Slice() []int {
	out := make([]int, 0, words.Length)
	for i := 0; i < words.Length; i++ {
		if p.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

func (p Positions) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Slice())
}

func (p *Positions) UnmarshalJSON(b []byte) error {
	var idx []int
	if err := json.Unmarshal(b, &idx); err != nil {
		return err
	}
	v, err := NewPositions(idx...)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
