// Package replay rebuilds all rating state from the match log: every player
// is reset to the standard priors, history is truncated, and each logged
// event is reprocessed in log order. Given the same log the rebuild is
// deterministic, so the log rather than the player table is the canonical
// record.
package replay

import (
	"context"
	"log/slog"

	"leaguerank/internal/model"
	"leaguerank/internal/services/match"
	"leaguerank/internal/storage"
)

// EpochSentinelDay is the last-active day every player is reset to before
// replay. Events logged before this day see a clamped (zero) inactivity gap
// rather than a negative one.
const EpochSentinelDay = 60000

// Service replays the match log through the processor.
type Service struct {
	storage   storage.Storage
	processor *match.Processor
	logger    *slog.Logger
}

// New creates a replay service.
func New(st storage.Storage, processor *match.Processor, logger *slog.Logger) *Service {
	return &Service{
		storage:   st,
		processor: processor,
		logger:    logger,
	}
}

// Summary reports what a replay covered.
type Summary struct {
	Events  int
	Players int
}

// Run resets every known player to priors, truncates all rating history,
// and reprocesses the entire match log in stored order. The log is trusted
// to be chronological; entries are not re-sorted.
func (s *Service) Run(ctx context.Context) (*Summary, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		p.Rating = model.PriorRating
		p.Deviation = model.PriorDeviation
		p.Volatility = model.PriorVolatility
		p.LastActiveDay = EpochSentinelDay
		if err := s.storage.SavePlayer(ctx, p); err != nil {
			return nil, err
		}
	}
	if err := s.storage.ResetHistory(ctx); err != nil {
		return nil, err
	}

	events, err := s.storage.ListMatches(ctx)
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		req := match.Request{Day: event.Day}
		for _, entry := range event.Entries {
			req.Entrants = append(req.Entrants, match.Entrant{
				Rank:   entry.Rank,
				Name:   entry.Name,
				Cohort: entry.Cohort,
			})
		}
		if _, err := s.processor.Reapply(ctx, req); err != nil {
			return nil, err
		}
	}

	if err := s.storage.Flush(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("replay complete",
		slog.Int("events", len(events)),
		slog.Int("players", len(players)),
	)

	return &Summary{Events: len(events), Players: len(players)}, nil
}
