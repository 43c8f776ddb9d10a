package match

import (
	"context"
	"fmt"
	"log/slog"

	"leaguerank/internal/model"
	"leaguerank/internal/rating"
	"leaguerank/internal/services/player"
	"leaguerank/internal/storage"
)

// Entrant is one line of a match submission: a placement plus the name (and
// optionally cohort) identifying who achieved it.
type Entrant struct {
	Rank   int
	Name   string
	Cohort string
}

// Request is one event to process: the event day and the ranked roster.
type Request struct {
	Day      int
	Entrants []Entrant
}

// PlayerResult reports how one entrant's rating moved.
type PlayerResult struct {
	ID      model.PlayerID
	Name    string
	Cohort  string
	Rank    int
	Created bool
	Before  rating.Rating
	After   rating.Rating
}

// Result summarizes a processed event.
type Result struct {
	Day     int
	Players []PlayerResult
}

// Processor runs events through validation, expansion, rating updates and
// persistence. An event either commits completely (every entrant updated,
// state flushed, event logged) or aborts with no rating mutation visible:
// all updates are computed before any is applied.
//
// Processing is not idempotent: submitting the same live event twice counts
// it twice. Rebuilding from the log is the supported way to reconstruct
// state.
type Processor struct {
	players   *player.Store
	storage   storage.Storage
	decayRate float64
	logger    *slog.Logger
}

// NewProcessor creates a match processor. decayRate is the inactivity
// constant fed to rating.Decay before each update.
func NewProcessor(players *player.Store, st storage.Storage, decayRate float64, logger *slog.Logger) *Processor {
	return &Processor{
		players:   players,
		storage:   st,
		decayRate: decayRate,
		logger:    logger,
	}
}

// Process validates and commits a new event, appending it to the match log.
func (p *Processor) Process(ctx context.Context, req Request) (*Result, error) {
	return p.run(ctx, req, true, false)
}

// Reapply commits an event that is already in the match log, so the log is
// left untouched. Entrant cohorts are taken literally (logged entries carry
// the definitive cohort), bypassing name-index resolution. Used by replay.
func (p *Processor) Reapply(ctx context.Context, req Request) (*Result, error) {
	return p.run(ctx, req, false, true)
}

func (p *Processor) run(ctx context.Context, req Request, logEvent, exact bool) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	// Resolve every entrant before touching any rating state.
	resolved := make([]PlayerResult, len(req.Entrants))
	states := make([]rating.Rating, len(req.Entrants))
	seen := make(map[model.PlayerID]struct{}, len(req.Entrants))
	for i, entrant := range req.Entrants {
		var (
			pl      *model.Player
			created bool
			err     error
		)
		if exact {
			pl, created, err = p.players.ResolveExact(ctx, entrant.Name, entrant.Cohort, req.Day)
		} else {
			pl, created, err = p.players.ResolveOrCreate(ctx, entrant.Name, entrant.Cohort, req.Day)
		}
		if err != nil {
			return nil, err
		}
		if _, dup := seen[pl.ID]; dup {
			return nil, fmt.Errorf("%w: %s", model.ErrDuplicateEntrant, entrant.Name)
		}
		seen[pl.ID] = struct{}{}

		// Uncertainty grown for the days since the player was last seen.
		// This is the one place decay is persisted (via the update below);
		// read-only views recompute it transiently.
		decayed := rating.Decay(pl.Deviation, req.Day-pl.LastActiveDay, p.decayRate)

		states[i] = rating.Rating{Value: pl.Rating, Deviation: decayed, Volatility: pl.Volatility}
		resolved[i] = PlayerResult{
			ID:      pl.ID,
			Name:    pl.Name,
			Cohort:  pl.Cohort,
			Rank:    entrant.Rank,
			Created: created,
			Before:  states[i],
		}
	}

	placements := make([]Placement, len(resolved))
	for i := range resolved {
		placements[i] = Placement{Rank: resolved[i].Rank, State: states[i]}
	}

	// Collect every update before committing any, so a convergence failure
	// on the last player leaves no partial mutation behind.
	opponentSets := Expand(placements)
	for i := range resolved {
		updated, err := rating.Update(states[i], opponentSets[i])
		if err != nil {
			return nil, fmt.Errorf("updating %s: %w", resolved[i].Name, err)
		}
		resolved[i].After = updated
	}

	for _, pr := range resolved {
		if err := p.players.ApplyUpdate(ctx, pr.ID, pr.After.Value, pr.After.Deviation, pr.After.Volatility, req.Day); err != nil {
			return nil, err
		}
	}
	if err := p.players.Flush(ctx); err != nil {
		return nil, err
	}

	if logEvent {
		event := &model.MatchEvent{Day: req.Day}
		for _, pr := range resolved {
			event.Entries = append(event.Entries, model.MatchEntry{
				Rank:   pr.Rank,
				Name:   pr.Name,
				Cohort: pr.Cohort,
			})
		}
		if err := p.storage.AppendMatch(ctx, event); err != nil {
			return nil, err
		}

		p.logger.Info("match processed",
			slog.Int("day", req.Day),
			slog.Int("entrants", len(resolved)),
		)
	}

	return &Result{Day: req.Day, Players: resolved}, nil
}

func validate(req Request) error {
	if len(req.Entrants) < 2 {
		return model.ErrRosterTooSmall
	}
	pairs := make(map[string]struct{}, len(req.Entrants))
	for _, entrant := range req.Entrants {
		if entrant.Name == "" {
			return model.ErrEmptyName
		}
		if entrant.Rank < 1 {
			return fmt.Errorf("%w: %d for %s", model.ErrInvalidRank, entrant.Rank, entrant.Name)
		}
		key := entrant.Name + "\x00" + entrant.Cohort
		if _, dup := pairs[key]; dup {
			return fmt.Errorf("%w: %s", model.ErrDuplicateEntrant, entrant.Name)
		}
		pairs[key] = struct{}{}
	}
	return nil
}
