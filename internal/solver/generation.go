// internal/solver/generation.go
//
// Generation tokens for cooperative cancellation. Starting a session
// invalidates every token handed out before it; loops check their token
// before each state change and stop with ErrSessionAborted once it is stale.

package solver

import (
	"errors"
	"sync/atomic"
)

// ErrSessionAborted is returned when work belongs to a superseded session.
var ErrSessionAborted = errors.New("solver: session aborted")

// Generations hands out run tokens. Starting a session or cancelling
// invalidates every token issued before.
type Generations struct {
	current atomic.Uint64
}

// Token identifies one session. It is passed by value into each unit of work;
// a unit whose token is stale discards its result instead of applying it.
type Token struct {
	gen *Generations
	id  uint64
}

// Begin starts a new generation and returns its token.
func (g *Generations) Begin() Token {
	return Token{gen: g, id: g.current.Add(1)}
}

// Cancel invalidates the active token without starting a new session.
func (g *Generations) Cancel() {
	g.current.Add(1)
}

// Current returns the active generation number.
func (g *Generations) Current() uint64 { return g.current.Load() }

// ID returns the generation number of the token.
func (t Token) ID() uint64 { return t.id }

// Stale reports whether a newer generation has started. The zero Token is stale.
func (t Token) Stale() bool {
	return t.gen == nil || t.gen.current.Load() != t.id
}

// Check returns ErrSessionAborted for a stale token.
func (t Token) Check() error {
	if t.Stale() {
		return ErrSessionAborted
	}
	return nil
}
