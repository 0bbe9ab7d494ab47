package model

import "time"

// MatchSummary is a lightweight record of a completed game, kept for the
// stats endpoint and win counters. Games terminated early by the operator
// have no winner.
type MatchSummary struct {
	ID          GameID    `json:"id"`
	Winner      string    `json:"winner,omitempty"`
	Loser       string    `json:"loser,omitempty"`
	Rounds      int       `json:"rounds"`
	Wars        int       `json:"wars"`
	CompletedAt time.Time `json:"completed_at"`
}
