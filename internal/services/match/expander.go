// Package match turns one N-way ranked event into per-player Glicko-2
// updates and commits them as a unit.
package match

import "leaguerank/internal/rating"

// Placement is one entrant's position going into expansion: the rank they
// finished at and their rating state as of the event (decay already applied).
type Placement struct {
	Rank  int
	State rating.Rating
}

// Expand converts a ranked multi-player result into pairwise comparisons:
// for each entrant, one opponent entry per other entrant, scored 1 if the
// entrant placed strictly better (lower rank value), 0 if strictly worse,
// and 0.5 on a shared rank. Scores are antisymmetric: score(i,j) equals
// 1 - score(j,i). O(N²) in roster size, which is a human league roster.
func Expand(placements []Placement) [][]rating.Opponent {
	out := make([][]rating.Opponent, len(placements))
	for i, subject := range placements {
		opponents := make([]rating.Opponent, 0, len(placements)-1)
		for j, other := range placements {
			if i == j {
				continue
			}
			opponents = append(opponents, rating.Opponent{
				Rating:    other.State.Value,
				Deviation: other.State.Deviation,
				Score:     scoreAgainst(subject.Rank, other.Rank),
			})
		}
		out[i] = opponents
	}
	return out
}

func scoreAgainst(rank, otherRank int) float64 {
	switch {
	case rank < otherRank:
		return 1
	case rank > otherRank:
		return 0
	default:
		return 0.5
	}
}
