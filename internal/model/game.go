package model

import (
	"sync"
	"time"
)

// GameID uniquely identifies a game for the lifetime of the process.
// IDs are never reused.
type GameID string

// GameState represents the current phase of a game.
type GameState string

const (
	GameStateForming         GameState = "forming"           // Hands being dealt
	GameStateAwaitingReady   GameState = "awaiting_ready"    // Waiting for both ready flags
	GameStateRoundInProgress GameState = "round_in_progress" // A round is resolving
	GameStateCompleted       GameState = "completed"         // Terminal
)

// Game is one running match of War: exactly two players, a 52-card pair
// of hands, a lifecycle state, and a monotonically increasing round
// counter. Round execution is serialized through the game's own lock;
// different games share nothing.
type Game struct {
	mu sync.Mutex

	ID      GameID
	State   GameState
	Players [2]*Player

	Round int // Completed rounds
	Wars  int // War tie-breaks resolved across all rounds

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Lock serializes round execution and state mutation for this game.
func (g *Game) Lock() { g.mu.Lock() }

// Unlock releases the game lock.
func (g *Game) Unlock() { g.mu.Unlock() }

// PlayerByName returns the named seat, or nil.
func (g *Game) PlayerByName(name string) *Player {
	for _, p := range g.Players {
		if p != nil && p.Name == name {
			return p
		}
	}
	return nil
}

// Opponent returns the other seat.
func (g *Game) Opponent(p *Player) *Player {
	if g.Players[0] == p {
		return g.Players[1]
	}
	return g.Players[0]
}

// BothReady reports whether both readiness flags are set. It does not
// consume the flags.
func (g *Game) BothReady() bool {
	return g.Players[0].Ready && g.Players[1].Ready
}

// ResetReady clears both readiness flags for the next round's handshake.
func (g *Game) ResetReady() {
	g.Players[0].Ready = false
	g.Players[1].Ready = false
}

// TotalCards sums both hands. It is invariantly 52 between rounds.
func (g *Game) TotalCards() int {
	return g.Players[0].Hand.Size() + g.Players[1].Hand.Size()
}

// IsComplete reports whether the game reached its terminal state. The
// caller must already hold the game lock; from outside it, use Completed.
func (g *Game) IsComplete() bool {
	return g.State == GameStateCompleted
}

// Completed is the lock-acquiring form of IsComplete, for readers that
// run concurrently with round execution.
func (g *Game) Completed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.State == GameStateCompleted
}
