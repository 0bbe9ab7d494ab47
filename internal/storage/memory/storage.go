package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/wargame-go/internal/model"
	"github.com/mcoot/wargame-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	summaries map[model.GameID]*model.MatchSummary
	wins      map[string]int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		summaries: make(map[model.GameID]*model.MatchSummary),
		wins:      make(map[string]int),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Match summary operations

func (s *Storage) SaveSummary(ctx context.Context, summary *model.MatchSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[summary.ID] = summary
	return nil
}

func (s *Storage) GetSummary(ctx context.Context, id model.GameID) (*model.MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaries[id]
	if !ok {
		return nil, model.ErrSummaryNotFound
	}
	return summary, nil
}

func (s *Storage) ListSummaries(ctx context.Context) ([]*model.MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.MatchSummary, 0, len(s.summaries))
	for _, summary := range s.summaries {
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedAt.Before(out[j].CompletedAt)
	})
	return out, nil
}

func (s *Storage) CountSummaries(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.summaries), nil
}

// Win counter operations

func (s *Storage) IncrementWins(ctx context.Context, playerName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wins[playerName]++
	return s.wins[playerName], nil
}

func (s *Storage) GetWins(ctx context.Context, playerName string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wins[playerName], nil
}
