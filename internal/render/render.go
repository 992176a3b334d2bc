// Package render draws boards and keyboards for the terminal.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle-buddy/internal/game"
	"github.com/robalobadob/wordle-buddy/internal/words"
)

// KeyboardRows is the on-screen keyboard layout.
var KeyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

var (
	tileBase = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("255"))

	styles = map[game.Mark]lipgloss.Style{
		game.MarkCorrect: tileBase.Background(lipgloss.Color("#6aaa64")),
		game.MarkPresent: tileBase.Background(lipgloss.Color("#c9b458")),
		game.MarkAbsent:  tileBase.Background(lipgloss.Color("#525558")),
	}
	blank = tileBase.Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236"))

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Tile renders one letter with the color of m. An empty mark is unrevealed.
func Tile(letter byte, m game.Mark) string {
	s, ok := styles[m]
	if !ok {
		s = blank
	}
	if letter == 0 {
		letter = ' '
	}
	return s.Render(strings.ToUpper(string(letter)))
}

// Row renders word with the marks revealed so far. marks may be shorter than word.
func Row(word string, marks []game.Mark) string {
	cells := make([]string, words.Length)
	for i := range cells {
		var l byte
		if i < len(word) {
			l = word[i]
		}
		var m game.Mark
		if i < len(marks) {
			m = marks[i]
		}
		cells[i] = Tile(l, m)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// Feedback renders a fully revealed row.
func Feedback(word string, f game.Feedback) string {
	return Row(word, f[:])
}

// Keyboard renders the keyboard colored by kb.
func Keyboard(kb game.Keyboard) string {
	lines := make([]string, 0, len(KeyboardRows))
	for _, row := range KeyboardRows {
		keys := make([]string, 0, len(row))
		for i := 0; i < len(row); i++ {
			keys = append(keys, Tile(row[i], kb.Status(row[i])))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, keys...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// Message colors a status line the way the web client did: wins green,
// failures red, aborts amber, everything else dim.
func Message(msg string) string {
	switch {
	case strings.HasPrefix(msg, "Solved"):
		return successStyle.Render(msg)
	case strings.Contains(msg, "Failed"), strings.Contains(msg, "No suggestions"):
		return errorStyle.Render(msg)
	case strings.Contains(msg, "Aborted"):
		return warnStyle.Render(msg)
	}
	return infoStyle.Render(msg)
}
