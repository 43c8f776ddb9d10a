package player

import (
	"context"
	"fmt"
	"log/slog"

	"leaguerank/internal/model"
	"leaguerank/internal/storage"
)

// Store is the authoritative gateway to player identity and rating state.
// All player mutation goes through it so the name index, the player table
// and the rating history stay consistent with each other.
type Store struct {
	storage storage.Storage
	resolve Resolver
	logger  *slog.Logger
}

// NewStore creates a player store. The resolver settles which player is
// meant when a bare name matches several; pass FailResolver for deployments
// that require an explicit cohort instead.
func NewStore(st storage.Storage, resolve Resolver, logger *slog.Logger) *Store {
	return &Store{
		storage: st,
		resolve: resolve,
		logger:  logger,
	}
}

// Register creates a brand-new player at the standard priors, active as of
// day, and persists the updated table and index immediately.
func (s *Store) Register(ctx context.Context, name, cohort string, day int) (*model.Player, error) {
	if name == "" {
		return nil, model.ErrEmptyName
	}
	id := model.DerivePlayerID(name, cohort)
	if _, err := s.storage.GetPlayer(ctx, id); err == nil {
		return nil, fmt.Errorf("%w: %s (cohort %q)", model.ErrPlayerExists, name, cohort)
	}
	return s.create(ctx, name, cohort, day)
}

// ResolveOrCreate maps a roster entry to a player. A non-empty cohort pins
// the identity exactly (creating the player if needed). A bare name falls
// back to the name index: one match wins outright, several go through the
// ambiguity resolver, none creates a new player in the empty cohort.
// Returns whether the player was newly created.
func (s *Store) ResolveOrCreate(ctx context.Context, name, cohort string, day int) (*model.Player, bool, error) {
	if name == "" {
		return nil, false, model.ErrEmptyName
	}

	if cohort != "" {
		return s.ResolveExact(ctx, name, cohort, day)
	}

	ids, err := s.storage.GetNameIndex(ctx, model.KeyForName(name))
	if err != nil {
		return nil, false, err
	}

	switch len(ids) {
	case 0:
		created, err := s.create(ctx, name, "", day)
		if err != nil {
			return nil, false, err
		}
		return created, true, nil
	case 1:
		existing, err := s.storage.GetPlayer(ctx, ids[0])
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	default:
		candidates := make([]*model.Player, 0, len(ids))
		for _, id := range ids {
			candidate, err := s.storage.GetPlayer(ctx, id)
			if err != nil {
				return nil, false, err
			}
			candidates = append(candidates, candidate)
		}
		chosen, err := s.resolve(candidates)
		if err != nil {
			return nil, false, fmt.Errorf("resolving %q: %w", name, err)
		}
		return chosen, false, nil
	}
}

// ResolveExact pins identity to the exact (name, cohort) pair, creating the
// player at priors if absent. Unlike ResolveOrCreate it never consults the
// name index, so an empty cohort means the empty cohort label itself,
// which is what replaying a logged entry requires.
func (s *Store) ResolveExact(ctx context.Context, name, cohort string, day int) (*model.Player, bool, error) {
	if name == "" {
		return nil, false, model.ErrEmptyName
	}
	id := model.DerivePlayerID(name, cohort)
	existing, err := s.storage.GetPlayer(ctx, id)
	if err == nil {
		return existing, false, nil
	}
	created, err := s.create(ctx, name, cohort, day)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// Get fetches a player by id.
func (s *Store) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// List returns every known player.
func (s *Store) List(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// History returns a player's full audit trail.
func (s *Store) History(ctx context.Context, id model.PlayerID) ([]model.RatingSample, error) {
	if _, err := s.storage.GetPlayer(ctx, id); err != nil {
		return nil, err
	}
	return s.storage.ListSamples(ctx, id)
}

// ApplyUpdate overwrites a player's rating state and last-active day and
// appends the matching history sample. The deviation is clamped into
// [0, MaxDeviation] no matter what the caller computed. Durability is
// deferred to Flush so a batch of updates lands together.
func (s *Store) ApplyUpdate(ctx context.Context, id model.PlayerID, rating, deviation, volatility float64, day int) error {
	p, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return err
	}

	if deviation > model.MaxDeviation {
		deviation = model.MaxDeviation
	}
	if deviation < 0 {
		deviation = 0
	}

	p.Rating = rating
	p.Deviation = deviation
	p.Volatility = volatility
	p.LastActiveDay = day

	if err := s.storage.SavePlayer(ctx, p); err != nil {
		return err
	}
	return s.storage.AppendSample(ctx, id, p.Sample(day))
}

// Flush persists all pending player table and name index mutations.
func (s *Store) Flush(ctx context.Context) error {
	return s.storage.Flush(ctx)
}

func (s *Store) create(ctx context.Context, name, cohort string, day int) (*model.Player, error) {
	p := model.NewPlayer(name, cohort, day)

	key := model.KeyForName(name)
	ids, err := s.storage.GetNameIndex(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := s.storage.SaveNameIndex(ctx, key, append(ids, p.ID)); err != nil {
		return nil, err
	}
	if err := s.storage.SavePlayer(ctx, p); err != nil {
		return nil, err
	}
	// The registration itself is the first point of the audit trail.
	if err := s.storage.AppendSample(ctx, p.ID, p.Sample(day)); err != nil {
		return nil, err
	}
	if err := s.storage.Flush(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("player created",
		slog.String("player_id", string(p.ID)),
		slog.String("name", name),
		slog.String("cohort", cohort),
		slog.Int("day", day),
	)

	return p, nil
}
