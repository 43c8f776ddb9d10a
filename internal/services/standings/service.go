package standings

import (
	"context"
	"log/slog"
	"sort"

	"leaguerank/internal/dependencies/clock"
	"leaguerank/internal/model"
	"leaguerank/internal/rating"
	"leaguerank/internal/storage"
)

// DefaultActiveWindowDays is how recently a player must have competed to
// appear in the table.
const DefaultActiveWindowDays = 180

// Row is one line of the standings table. Deviation reflects inactivity
// since the player's last event; the stored record is not modified.
type Row struct {
	Rank          int     `json:"rank"`
	Name          string  `json:"name"`
	Cohort        string  `json:"cohort,omitempty"`
	Rating        float64 `json:"rating"`
	Deviation     float64 `json:"rating_deviation"`
	Volatility    float64 `json:"volatility"`
	R95Lower      float64 `json:"r95_lower"`
	R95Upper      float64 `json:"r95_upper"`
	LastActiveDay int     `json:"last_active_day"`
}

type Options struct {
	// ActiveWindowDays overrides DefaultActiveWindowDays when positive.
	ActiveWindowDays int
	// IncludeInactive keeps players whose last event falls outside the window.
	IncludeInactive bool
	// DecayRate overrides rating.DefaultDecayRate when positive.
	DecayRate float64
}

type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

func New(st storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: st,
		clock:   clk,
		logger:  logger,
	}
}

// Table builds the current standings. Ordering is by the conservative
// estimate R95Lower, highest first, so an uncertain high rating does not
// outrank a proven one.
func (s *Service) Table(ctx context.Context, opts Options) ([]Row, error) {
	window := opts.ActiveWindowDays
	if window <= 0 {
		window = DefaultActiveWindowDays
	}
	decayRate := opts.DecayRate
	if decayRate <= 0 {
		decayRate = rating.DefaultDecayRate
	}

	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	rows := make([]Row, 0, len(players))
	for _, p := range players {
		idle := today - p.LastActiveDay
		if !opts.IncludeInactive && idle > window {
			continue
		}
		deviation := rating.Decay(p.Deviation, idle, decayRate)
		rows = append(rows, Row{
			Name:          p.Name,
			Cohort:        p.Cohort,
			Rating:        p.Rating,
			Deviation:     deviation,
			Volatility:    p.Volatility,
			R95Lower:      p.Rating - 2*deviation,
			R95Upper:      p.Rating + 2*deviation,
			LastActiveDay: p.LastActiveDay,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].R95Lower != rows[j].R95Lower {
			return rows[i].R95Lower > rows[j].R95Lower
		}
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Cohort < rows[j].Cohort
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	s.logger.Debug("standings built",
		slog.Int("players", len(players)),
		slog.Int("rows", len(rows)))
	return rows, nil
}

// Compare estimates the chance that a beats b at their current ratings.
func (s *Service) Compare(a, b *model.Player) float64 {
	return rating.WinProbability(
		rating.Rating{Value: a.Rating, Deviation: a.Deviation, Volatility: a.Volatility},
		rating.Rating{Value: b.Rating, Deviation: b.Deviation, Volatility: b.Volatility},
	)
}
