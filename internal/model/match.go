package model

// MatchEntry is one line of a logged match: the placement a named player
// achieved. Name and cohort (not the id) are stored so the log stays
// human-readable and ids can be re-derived on replay.
type MatchEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Cohort string `json:"cohort"`
}

// PlayerID returns the stable id for this entry.
func (e MatchEntry) PlayerID() PlayerID {
	return DerivePlayerID(e.Name, e.Cohort)
}

// MatchEvent is one logged competition: an event day plus the ranked roster.
// Lower rank value means better placement (rank 1 beat rank 2); equal ranks
// are draws. Events are immutable once appended to the match log, which is
// the canonical source of truth the player table can be rebuilt from.
type MatchEvent struct {
	Day     int          `json:"day"`
	Entries []MatchEntry `json:"entries"`
}
