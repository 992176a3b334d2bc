// internal/solver/session.go
//
// Session is the bounded state machine for one solving attempt:
//
//	Guessing ──win──▶ Won
//	    │──6 attempts / no candidate──▶ Lost
//	    └──superseded or cancelled──▶ Aborted
//
// Like Constraints, a Session is a value; every transition returns a new one.

package solver

import (
	"errors"
	"strings"

	"github.com/robalobadob/wordle-buddy/internal/game"
	"github.com/robalobadob/wordle-buddy/internal/words"
)

// MaxAttempts is the number of rows on the puzzle board.
const MaxAttempts = 6

// State of a session.
type State int

const (
	Guessing State = iota
	Won
	Lost
	Aborted
)

func (s State) String() string {
	switch s {
	case Guessing:
		return "guessing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// EndReason explains why a session left the Guessing state.
type EndReason string

const (
	ReasonNone      EndReason = ""
	ReasonSolved    EndReason = "solved"
	ReasonBudget    EndReason = "budget"
	ReasonExhausted EndReason = "exhausted"
	ReasonAborted   EndReason = "aborted"
)

var (
	// ErrSessionOver is returned when recording a guess after the session ended.
	ErrSessionOver = errors.New("solver: session is over")

	// ErrInvalidStartWord matches every StartWordError via errors.Is.
	ErrInvalidStartWord = errors.New("invalid starting word")
)

// StartWordError rejects a caller-supplied first guess. Reason is user-facing.
type StartWordError struct {
	Word   string
	Reason string
}

func (e *StartWordError) Error() string { return e.Reason }

func (e *StartWordError) Is(target error) bool { return target == ErrInvalidStartWord }

// ValidateStartWord normalizes w and checks it is a 5-letter dictionary word.
func ValidateStartWord(d *words.Dictionary, w string) (string, error) {
	w = strings.ToLower(strings.TrimSpace(w))
	if len(w) != words.Length || !words.IsWord(w) {
		return "", &StartWordError{Word: w, Reason: "Starting word must be 5 letters"}
	}
	if !d.Contains(w) {
		return "", &StartWordError{Word: w, Reason: "Starting word is not in the word list"}
	}
	return w, nil
}

// Attempt is one accepted guess and its feedback.
type Attempt struct {
	Word     string        `json:"word"`
	Feedback game.Feedback `json:"feedback"`
}

// Session tracks attempts and constraints for one puzzle.
type Session struct {
	constraints Constraints
	attempts    []Attempt
	state       State
	reason      EndReason
}

// NewSession starts in Guessing with no constraints.
func NewSession() Session {
	return Session{constraints: Empty(), state: Guessing}
}

func (s Session) State() State             { return s.state }
func (s Session) Reason() EndReason        { return s.reason }
func (s Session) Constraints() Constraints { return s.constraints }
func (s Session) Done() bool               { return s.state != Guessing }
func (s Session) Attempts() []Attempt      { return append([]Attempt(nil), s.attempts...) }
func (s Session) Turn() int                { return len(s.attempts) }
func (s Session) Remaining() int           { return MaxAttempts - len(s.attempts) }

// Next returns the guess for the coming turn: start on the first turn, the
// engine's suggestion afterwards. ok is false when the engine has nothing left.
func (s Session) Next(e *Engine, start string) (string, bool) {
	if len(s.attempts) == 0 && start != "" && !s.constraints.IsBanned(start) {
		return start, true
	}
	return e.Suggest(s.constraints)
}

// Record applies an accepted guess and its feedback.
func (s Session) Record(guess string, fb game.Feedback) (Session, error) {
	if s.Done() {
		return s, ErrSessionOver
	}
	c, err := s.constraints.Apply(guess, fb)
	if err != nil {
		return s, err
	}
	next := s
	next.constraints = c
	next.attempts = append(s.Attempts(), Attempt{Word: guess, Feedback: fb})
	switch {
	case fb.Solved():
		next.state, next.reason = Won, ReasonSolved
	case len(next.attempts) >= MaxAttempts:
		next.state, next.reason = Lost, ReasonBudget
	}
	return next, nil
}

// Reject bans a word the puzzle refused without spending an attempt.
func (s Session) Reject(word string) Session {
	next := s
	next.constraints = s.constraints.WithBanned(word)
	return next
}

// Exhaust ends the session as unsolved because no candidate is left.
func (s Session) Exhaust() Session {
	if s.Done() {
		return s
	}
	next := s
	next.state, next.reason = Lost, ReasonExhausted
	return next
}

// Abort ends the session because a newer one superseded it.
func (s Session) Abort() Session {
	if s.Done() {
		return s
	}
	next := s
	next.state, next.reason = Aborted, ReasonAborted
	return next
}
