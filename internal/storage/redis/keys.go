package redis

import (
	"fmt"

	"github.com/mcoot/wargame-go/internal/model"
)

// Key prefix for all match-record data
const keyPrefix = "wargame"

// summaryKey returns the Redis key for a MatchSummary
func summaryKey(id model.GameID) string {
	return fmt.Sprintf("%s:summary:%s", keyPrefix, id)
}

// summaryIndexKey returns the Redis key for the SET of recorded summaries
func summaryIndexKey() string {
	return fmt.Sprintf("%s:idx:summaries", keyPrefix)
}

// winsKey returns the Redis key for a player's win counter
func winsKey(playerName string) string {
	return fmt.Sprintf("%s:wins:%s", keyPrefix, playerName)
}
