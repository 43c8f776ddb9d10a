package redis

import (
	"fmt"

	"leaguerank/internal/model"
)

// Key prefix for all league data
const keyPrefix = "leaguerank"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersIndexKey returns the Redis key for the SET of all player ids
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// nameIndexKey returns the Redis key for the name key -> player ids mapping
func nameIndexKey(key model.NameKey) string {
	return fmt.Sprintf("%s:idx:name:%s", keyPrefix, key)
}

// matchLogKey returns the Redis key for the append-only match log LIST
func matchLogKey() string {
	return fmt.Sprintf("%s:matches", keyPrefix)
}

// historyKey returns the Redis key for a player's rating history LIST
func historyKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:history:%s", keyPrefix, id)
}

// historyIndexKey returns the Redis key for the SET of players with history
func historyIndexKey() string {
	return fmt.Sprintf("%s:idx:history", keyPrefix)
}
