package model

import "errors"

// Common errors used across the application
var (
	// Deck and hand invariant violations. These indicate the 52-card
	// conservation invariant was already broken and are never recovered.
	ErrEmptyDeck = errors.New("deal from an empty deck")
	ErrEmptyHand = errors.New("round requested on an empty hand")

	// Game errors
	ErrGameNotFound    = errors.New("game not found")
	ErrGameComplete    = errors.New("game is already complete")
	ErrPlayersNotReady = errors.New("both players must signal ready before a round")
	ErrPlayerNotFound  = errors.New("player not found in game")

	// Match history errors
	ErrSummaryNotFound = errors.New("match summary not found")
)
