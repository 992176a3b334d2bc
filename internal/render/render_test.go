package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/wordle-buddy/internal/game"
)

func init() {
	// Plain output keeps assertions independent of the terminal.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestRow(t *testing.T) {
	got := Row("stare", []game.Mark{game.MarkAbsent, game.MarkAbsent})
	assert.Equal(t, " S  T  A  R  E ", got)

	assert.Equal(t, strings.Repeat("   ", 5), Row("", nil))
}

func TestFeedback(t *testing.T) {
	got := Feedback("crane", game.MustClassify("crane", "crane"))
	assert.Equal(t, " C  R  A  N  E ", got)
}

func TestKeyboard(t *testing.T) {
	kb := game.Keyboard{}.Apply("stare", game.MustClassify("stare", "crane"))
	out := Keyboard(kb)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Q  W  E")
	assert.Contains(t, lines[2], "Z  X  C")
}

func TestMessage(t *testing.T) {
	for _, m := range []string{"Solved in 3 attempts!", "No suggestions left", "Aborted", "Solving..."} {
		assert.Equal(t, m, Message(m))
	}
}
