package redis

import (
	"fmt"

	"github.com/mcoot/playerroster/internal/model"
)

// keyspace generates Redis keys under a common prefix
type keyspace struct {
	prefix string
}

// player returns the key holding one encoded player
func (k keyspace) player(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", k.prefix, id)
}

// index returns the key of the sorted set of player IDs (score = ID)
func (k keyspace) index() string {
	return fmt.Sprintf("%s:players", k.prefix)
}

// sequence returns the key of the player ID counter
func (k keyspace) sequence() string {
	return fmt.Sprintf("%s:seq:player", k.prefix)
}
