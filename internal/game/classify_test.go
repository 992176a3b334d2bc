package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	c = MarkCorrect
	p = MarkPresent
	a = MarkAbsent
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		guess    string
		solution string
		want     Feedback
	}{
		{name: "exact", guess: "crane", solution: "crane", want: Feedback{c, c, c, c, c}},
		{name: "nothing shared", guess: "dough", solution: "crane", want: Feedback{a, a, a, a, a}},
		{name: "stare vs crane", guess: "stare", solution: "crane", want: Feedback{a, a, c, p, c}},
		// boxer has its e at index 3, the same tile as abbey, so e is correct.
		{name: "abbey vs boxer", guess: "abbey", solution: "boxer", want: Feedback{a, p, a, c, a}},
		// l at 0 and 1: solution has one l (index 1) → second l correct, first absent.
		// a at 2 correct; m at 3 present; a at 4: the only other a (index 0) is unconsumed → present.
		{name: "llama vs alarm", guess: "llama", solution: "alarm", want: Feedback{a, c, c, p, p}},
		{name: "sassy vs stork", guess: "sassy", solution: "stork", want: Feedback{c, a, a, a, a}},
		{name: "present consumed by later correct", guess: "eerie", solution: "crane", want: Feedback{a, a, p, a, c}},
		{name: "uppercase input", guess: "CRANE", solution: "Crane", want: Feedback{c, c, c, c, c}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.guess, tt.solution)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestClassify_InvalidWords(t *testing.T) {
	_, err := Classify("cran", "crane")
	assert.ErrorIs(t, err, ErrInvalidWord)

	_, err = Classify("crane", "cr4ne")
	assert.ErrorIs(t, err, ErrInvalidWord)

	assert.Panics(t, func() { MustClassify("x", "crane") })
}

func TestClassify_NeverOvercountsRepeats(t *testing.T) {
	pairs := [][2]string{
		{"llama", "alarm"}, {"abbey", "boxer"}, {"sassy", "stork"},
		{"eerie", "crane"}, {"geese", "cheek"}, {"mamma", "llama"},
	}
	for _, pair := range pairs {
		fb := MustClassify(pair[0], pair[1])
		for ch := byte('a'); ch <= 'z'; ch++ {
			var marked, inSolution int
			for i := 0; i < 5; i++ {
				if pair[0][i] == ch && fb[i] != MarkAbsent {
					marked++
				}
				if pair[1][i] == ch {
					inSolution++
				}
			}
			assert.LessOrEqual(t, marked, inSolution, "%s vs %s letter %c", pair[0], pair[1], ch)
		}
	}
}

func TestFeedback_SolvedAndString(t *testing.T) {
	assert.True(t, Feedback{c, c, c, c, c}.Solved())
	assert.False(t, Feedback{c, c, p, c, c}.Solved())
	assert.Equal(t, "..GYG", Feedback{a, a, c, p, c}.String())
}

func TestMarkValid(t *testing.T) {
	assert.True(t, MarkCorrect.Valid())
	assert.True(t, MarkAbsent.Valid())
	assert.False(t, Mark("tbd").Valid())
}

func TestKeyboard(t *testing.T) {
	var k Keyboard

	k = k.Update('a', MarkAbsent)
	assert.Equal(t, MarkAbsent, k.Status('a'))

	k = k.Update('a', MarkPresent)
	assert.Equal(t, MarkPresent, k.Status('a'), "absent upgrades to present")

	k = k.Update('a', MarkAbsent)
	assert.Equal(t, MarkPresent, k.Status('a'), "present never downgrades to absent")

	k = k.Update('a', MarkCorrect)
	k = k.Update('a', MarkPresent)
	assert.Equal(t, MarkCorrect, k.Status('a'), "correct is final")

	assert.Equal(t, Mark(""), k.Status('z'))
}

func TestKeyboard_ApplyDoesNotMutate(t *testing.T) {
	base := Keyboard{}.Update('s', MarkAbsent)
	next := base.Apply("stare", MustClassify("stare", "crane"))

	assert.Equal(t, MarkAbsent, base.Status('s'))
	assert.Equal(t, Mark(""), base.Status('a'))
	assert.Equal(t, MarkCorrect, next.Status('a'))
	assert.Equal(t, MarkPresent, next.Status('r'))
}
