package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wargame-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SummaryTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) summary(id string, completedAt time.Time) *model.MatchSummary {
	return &model.MatchSummary{
		ID:          model.GameID(id),
		Winner:      model.PlayerTwoName,
		Loser:       model.PlayerOneName,
		Rounds:      17,
		Wars:        1,
		CompletedAt: completedAt,
	}
}

func (s *StorageSuite) TestSaveAndGetSummary() {
	summary := s.summary("GAME1", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.Require().NoError(s.storage.SaveSummary(s.ctx, summary))

	got, err := s.storage.GetSummary(s.ctx, "GAME1")
	s.Require().NoError(err)
	s.Equal(summary.ID, got.ID)
	s.Equal(summary.Winner, got.Winner)
	s.Equal(summary.Rounds, got.Rounds)
	s.True(summary.CompletedAt.Equal(got.CompletedAt))
}

func (s *StorageSuite) TestGetSummaryNotFound() {
	_, err := s.storage.GetSummary(s.ctx, "MISSING")
	s.ErrorIs(err, model.ErrSummaryNotFound)
}

func (s *StorageSuite) TestSummariesExpire() {
	summary := s.summary("GAME1", time.Now().UTC())
	s.Require().NoError(s.storage.SaveSummary(s.ctx, summary))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetSummary(s.ctx, "GAME1")
	s.ErrorIs(err, model.ErrSummaryNotFound)

	// The index self-heals on list
	got, err := s.storage.ListSummaries(s.ctx)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *StorageSuite) TestListSummariesOrderedByCompletion() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.SaveSummary(s.ctx, s.summary("LATER", base.Add(time.Hour))))
	s.Require().NoError(s.storage.SaveSummary(s.ctx, s.summary("EARLIER", base)))

	got, err := s.storage.ListSummaries(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(model.GameID("EARLIER"), got[0].ID)
	s.Equal(model.GameID("LATER"), got[1].ID)
}

func (s *StorageSuite) TestCountSummaries() {
	n, err := s.storage.CountSummaries(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, n)

	s.Require().NoError(s.storage.SaveSummary(s.ctx, s.summary("GAME1", time.Now().UTC())))
	s.Require().NoError(s.storage.SaveSummary(s.ctx, s.summary("GAME2", time.Now().UTC())))

	n, err = s.storage.CountSummaries(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *StorageSuite) TestWinCounters() {
	n, err := s.storage.IncrementWins(s.ctx, model.PlayerOneName)
	s.Require().NoError(err)
	s.Equal(1, n)

	n, err = s.storage.IncrementWins(s.ctx, model.PlayerOneName)
	s.Require().NoError(err)
	s.Equal(2, n)

	wins, err := s.storage.GetWins(s.ctx, model.PlayerOneName)
	s.Require().NoError(err)
	s.Equal(2, wins)

	wins, err = s.storage.GetWins(s.ctx, model.PlayerTwoName)
	s.Require().NoError(err)
	s.Equal(0, wins)
}
