package memory

import (
	"context"
	"sync"

	"leaguerank/internal/model"
	"leaguerank/internal/storage"
)

// Storage is an in-memory implementation of the storage interface, used by
// tests and throwaway runs. Flush is a no-op: memory state is never durable.
type Storage struct {
	mu sync.RWMutex

	players   map[model.PlayerID]*model.Player
	nameIndex map[model.NameKey][]model.PlayerID
	matches   []*model.MatchEvent
	history   map[model.PlayerID][]model.RatingSample
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:   make(map[model.PlayerID]*model.Player),
		nameIndex: make(map[model.NameKey][]model.PlayerID),
		history:   make(map[model.PlayerID][]model.RatingSample),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player table operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *player
	s.players[player.ID] = &cp
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *player
	return &cp, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		cp := *player
		out = append(out, &cp)
	}
	return out, nil
}

// Name index operations

func (s *Storage) GetNameIndex(ctx context.Context, key model.NameKey) ([]model.PlayerID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.PlayerID(nil), s.nameIndex[key]...), nil
}

func (s *Storage) SaveNameIndex(ctx context.Context, key model.NameKey, ids []model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nameIndex[key] = append([]model.PlayerID(nil), ids...)
	return nil
}

// Flush is a no-op for memory storage.
func (s *Storage) Flush(ctx context.Context) error {
	return nil
}

// Match log operations

func (s *Storage) AppendMatch(ctx context.Context, event *model.MatchEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *event
	cp.Entries = append([]model.MatchEntry(nil), event.Entries...)
	s.matches = append(s.matches, &cp)
	return nil
}

func (s *Storage) ListMatches(ctx context.Context) ([]*model.MatchEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.MatchEvent, 0, len(s.matches))
	for _, event := range s.matches {
		cp := *event
		cp.Entries = append([]model.MatchEntry(nil), event.Entries...)
		out = append(out, &cp)
	}
	return out, nil
}

// Rating history operations

func (s *Storage) AppendSample(ctx context.Context, id model.PlayerID, sample model.RatingSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[id] = append(s.history[id], sample)
	return nil
}

func (s *Storage) ListSamples(ctx context.Context, id model.PlayerID) ([]model.RatingSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.RatingSample(nil), s.history[id]...), nil
}

func (s *Storage) ResetHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = make(map[model.PlayerID][]model.RatingSample)
	return nil
}
