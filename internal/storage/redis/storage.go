package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"leaguerank/internal/model"
	"leaguerank/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface. Writes
// are durable as soon as Redis acknowledges them, so Flush is a no-op; the
// all-or-nothing flush guarantee is carried by pipelined multi-key writes.
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

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player table operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Pipeline the value write and the id-set update together.
	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.SAdd(ctx, playersIndexKey(), string(player.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	ids, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(ids))
	for _, id := range ids {
		player, err := s.GetPlayer(ctx, model.PlayerID(id))
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) {
				continue
			}
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

// Name index operations

func (s *Storage) GetNameIndex(ctx context.Context, key model.NameKey) ([]model.PlayerID, error) {
	data, err := s.client.Get(ctx, nameIndexKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var ids []model.PlayerID
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Storage) SaveNameIndex(ctx context.Context, key model.NameKey, ids []model.PlayerID) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, nameIndexKey(key), data, 0).Err()
}

// Flush is a no-op: Redis writes are already durable when acknowledged.
func (s *Storage) Flush(ctx context.Context) error {
	return nil
}

// Match log operations

func (s *Storage) AppendMatch(ctx context.Context, event *model.MatchEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, matchLogKey(), data).Err()
}

func (s *Storage) ListMatches(ctx context.Context) ([]*model.MatchEvent, error) {
	items, err := s.client.LRange(ctx, matchLogKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]*model.MatchEvent, 0, len(items))
	for _, item := range items {
		var event model.MatchEvent
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}
	return events, nil
}

// Rating history operations

func (s *Storage) AppendSample(ctx context.Context, id model.PlayerID, sample model.RatingSample) error {
	data, err := json.Marshal(sample)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, historyKey(id), data)
	pipe.SAdd(ctx, historyIndexKey(), string(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListSamples(ctx context.Context, id model.PlayerID) ([]model.RatingSample, error) {
	items, err := s.client.LRange(ctx, historyKey(id), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	samples := make([]model.RatingSample, 0, len(items))
	for _, item := range items {
		var sample model.RatingSample
		if err := json.Unmarshal([]byte(item), &sample); err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func (s *Storage) ResetHistory(ctx context.Context) error {
	ids, err := s.client.SMembers(ctx, historyIndexKey()).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, historyKey(model.PlayerID(id)))
	}
	pipe.Del(ctx, historyIndexKey())
	_, err = pipe.Exec(ctx)
	return err
}
