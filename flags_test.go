package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-buddy/internal/driver"
	"github.com/robalobadob/wordle-buddy/internal/simulate"
	"github.com/robalobadob/wordle-buddy/internal/solver"
)

func TestConstraintFlags(t *testing.T) {
	v, err := constraintFlags("st", "a2,E4", "r3,r1", "stare, crane")
	require.NoError(t, err)
	assert.Equal(t, []string{"s", "t"}, v.Absent)
	assert.Equal(t, map[string][]int{"a": {2}, "e": {4}}, v.Correct)
	assert.Equal(t, map[string][]int{"r": {3, 1}}, v.Present)
	assert.Equal(t, []string{"stare", "crane"}, v.Banned)

	c, err := v.Constraints()
	require.NoError(t, err)
	assert.True(t, c.IsAbsent('s'))
	assert.True(t, c.IsBanned("crane"))
}

func TestConstraintFlags_Empty(t *testing.T) {
	v, err := constraintFlags("", "", "", "")
	require.NoError(t, err)
	c, err := v.Constraints()
	require.NoError(t, err)
	assert.Empty(t, c.Absent())
	assert.Empty(t, c.Banned())
}

func TestConstraintFlags_Invalid(t *testing.T) {
	for _, tt := range []struct{ correct, present string }{
		{correct: "a"},
		{correct: "ax"},
		{present: "r-"},
	} {
		_, err := constraintFlags("", tt.correct, tt.present, "")
		assert.Error(t, err, tt)
	}

	// Out-of-range tiles parse but fail validation.
	v, err := constraintFlags("", "a9", "", "")
	require.NoError(t, err)
	_, err = v.Constraints()
	assert.Error(t, err)
}

func TestOutcomeMessage(t *testing.T) {
	won := driver.Outcome{Reason: solver.ReasonSolved, Attempts: make([]solver.Attempt, 3)}
	assert.Equal(t, "Solved in 3 attempts!", outcomeMessage(won))
	assert.Equal(t, simulate.MsgNoneLeft, outcomeMessage(driver.Outcome{Reason: solver.ReasonExhausted}))
	assert.Equal(t, simulate.MsgOutOfTurn, outcomeMessage(driver.Outcome{Reason: solver.ReasonBudget}))
	assert.Equal(t, simulate.MsgAborted, outcomeMessage(driver.Outcome{Reason: solver.ReasonAborted}))
}

func TestSolveMessage(t *testing.T) {
	aborted := fmt.Errorf("%w: %w", solver.ErrSessionAborted, context.Canceled)
	msg, err := solveMessage(driver.Outcome{Reason: solver.ReasonAborted}, aborted)
	require.NoError(t, err)
	assert.Equal(t, simulate.MsgAborted, msg)

	// Interrupted inside a board call.
	msg, err = solveMessage(driver.Outcome{}, fmt.Errorf("enter %q: %w", "stare", context.Canceled))
	require.NoError(t, err)
	assert.Equal(t, simulate.MsgAborted, msg)

	boom := errors.New("browser crashed")
	_, err = solveMessage(driver.Outcome{}, boom)
	assert.ErrorIs(t, err, boom)

	won := driver.Outcome{Reason: solver.ReasonSolved, Attempts: make([]solver.Attempt, 4)}
	msg, err = solveMessage(won, nil)
	require.NoError(t, err)
	assert.Equal(t, "Solved in 4 attempts!", msg)
}
