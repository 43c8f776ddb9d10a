package rating

import (
	"math"

	"leaguerank/internal/model"
)

// DefaultDecayRate is the per-day uncertainty growth constant c in
// RD' = min(350, sqrt(RD^2 + c^2 * days)). At 18, a fully confident player
// climbs back to the maximum deviation after roughly a year away.
const DefaultDecayRate = 18.0

// Decay grows a rating deviation for days of inactivity, capped at the
// maximum deviation. Negative day counts (out-of-order data) are treated as
// zero: decay never shrinks a deviation.
func Decay(deviation float64, days int, rate float64) float64 {
	if days < 0 {
		days = 0
	}
	grown := math.Sqrt(deviation*deviation + rate*rate*float64(days))
	return math.Min(model.MaxDeviation, grown)
}
