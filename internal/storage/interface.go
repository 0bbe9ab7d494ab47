package storage

import (
	"context"

	"github.com/mcoot/wargame-go/internal/model"
)

// Storage defines the interface for match record keeping. Live games
// never touch storage; only completed-match summaries and win counters
// land here.
type Storage interface {
	// Match summary operations
	SaveSummary(ctx context.Context, summary *model.MatchSummary) error
	GetSummary(ctx context.Context, id model.GameID) (*model.MatchSummary, error)
	ListSummaries(ctx context.Context) ([]*model.MatchSummary, error)
	CountSummaries(ctx context.Context) (int, error)

	// Win counter operations
	IncrementWins(ctx context.Context, playerName string) (int, error)
	GetWins(ctx context.Context, playerName string) (int, error)
}
