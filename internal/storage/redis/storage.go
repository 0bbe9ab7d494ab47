package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/wargame-go/internal/model"
	"github.com/mcoot/wargame-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Match summary operations

func (s *Storage) SaveSummary(ctx context.Context, summary *model.MatchSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	key := summaryKey(summary.ID)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, s.cfg.SummaryTTL)
	pipe.SAdd(ctx, summaryIndexKey(), string(summary.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSummary(ctx context.Context, id model.GameID) (*model.MatchSummary, error) {
	data, err := s.client.Get(ctx, summaryKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrSummaryNotFound
	}
	if err != nil {
		return nil, err
	}

	var summary model.MatchSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *Storage) ListSummaries(ctx context.Context) ([]*model.MatchSummary, error) {
	ids, err := s.client.SMembers(ctx, summaryIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*model.MatchSummary, 0, len(ids))
	for _, id := range ids {
		summary, err := s.GetSummary(ctx, model.GameID(id))
		if errors.Is(err, model.ErrSummaryNotFound) {
			// Summary expired but index entry remained; drop it
			_ = s.client.SRem(ctx, summaryIndexKey(), id).Err()
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedAt.Before(out[j].CompletedAt)
	})
	return out, nil
}

func (s *Storage) CountSummaries(ctx context.Context) (int, error) {
	n, err := s.client.SCard(ctx, summaryIndexKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Win counter operations

func (s *Storage) IncrementWins(ctx context.Context, playerName string) (int, error) {
	n, err := s.client.Incr(ctx, winsKey(playerName)).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *Storage) GetWins(ctx context.Context, playerName string) (int, error) {
	n, err := s.client.Get(ctx, winsKey(playerName)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}
