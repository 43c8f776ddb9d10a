package model

// Rating priors for a player with no recorded results, and the bound the
// deviation must stay inside for the life of the player.
const (
	PriorRating     = 1500.0
	PriorDeviation  = 350.0
	PriorVolatility = 0.06

	MaxDeviation = 350.0
)

// PlayerID uniquely identifies a player across the league. It is a
// deterministic digest of (name, cohort), so the same person always maps to
// the same id and a rebuild from the match log recovers identical ids.
type PlayerID string

// Player is the live rating state for one competitor.
type Player struct {
	ID     PlayerID `json:"id"`
	Name   string   `json:"name"`
	Cohort string   `json:"cohort"`

	// LastActiveDay is the day index of the most recent event this player
	// appeared in (or their registration day).
	LastActiveDay int `json:"last_active_day"`

	Rating     float64 `json:"rating"`
	Deviation  float64 `json:"rating_deviation"`
	Volatility float64 `json:"volatility"`
}

// NewPlayer creates a player at the standard priors, active as of day.
func NewPlayer(name, cohort string, day int) *Player {
	return &Player{
		ID:            DerivePlayerID(name, cohort),
		Name:          name,
		Cohort:        cohort,
		LastActiveDay: day,
		Rating:        PriorRating,
		Deviation:     PriorDeviation,
		Volatility:    PriorVolatility,
	}
}

// RatingSample is one point in a player's audit trail, appended every time
// their rating is written. Samples are never modified or deleted except by a
// full history truncation during replay.
type RatingSample struct {
	Day        int     `json:"day"`
	Rating     float64 `json:"rating"`
	Deviation  float64 `json:"rating_deviation"`
	Volatility float64 `json:"volatility"`
}

// Sample captures the player's current state as a history point for day.
func (p *Player) Sample(day int) RatingSample {
	return RatingSample{
		Day:        day,
		Rating:     p.Rating,
		Deviation:  p.Deviation,
		Volatility: p.Volatility,
	}
}
