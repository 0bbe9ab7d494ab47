package model

import "github.com/mcoot/wargame-go/internal/netline"

// Player names are assigned by pairing order and scoped to one game.
const (
	PlayerOneName = "Player One"
	PlayerTwoName = "Player Two"
)

// Player is one seat in a game: an assigned name, the player's hand, a
// per-round readiness flag, and the line channel back to the client.
// Players are never shared across games.
type Player struct {
	Name  string
	Hand  Hand
	Ready bool
	Conn  netline.Conn

	// Unreachable is set once the client's connection drops; the player
	// can no longer contest rounds.
	Unreachable bool
}
