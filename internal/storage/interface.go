package storage

import (
	"context"

	"leaguerank/internal/model"
)

// Storage defines the interface for league state persistence.
//
// The player table and name index are working state: mutations accumulate in
// the backend and become durable at Flush, which must be all-or-nothing: a
// failure mid-flush leaves the previously durable state intact. The match
// log and per-player history are append-only; the only permitted rewrite is
// ResetHistory, which truncates every player's history before a replay
// rebuilds it. The match log itself is never rewritten.
type Storage interface {
	// Player table operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Name index operations
	GetNameIndex(ctx context.Context, key model.NameKey) ([]model.PlayerID, error)
	SaveNameIndex(ctx context.Context, key model.NameKey, ids []model.PlayerID) error

	// Flush makes all pending player table and name index mutations durable.
	Flush(ctx context.Context) error

	// Match log operations
	AppendMatch(ctx context.Context, event *model.MatchEvent) error
	ListMatches(ctx context.Context) ([]*model.MatchEvent, error)

	// Rating history operations
	AppendSample(ctx context.Context, id model.PlayerID, sample model.RatingSample) error
	ListSamples(ctx context.Context, id model.PlayerID) ([]model.RatingSample, error)
	ResetHistory(ctx context.Context) error
}
