package redis

import (
	"fmt"
	"strings"

	"github.com/bartdebruin-tp/matchmaker/internal/model"
)

// Key prefix for all roster data
const keyPrefix = "matchmaker"

// relSep separates the two halves of a relation member. IDs are UUIDs,
// so the separator can never appear inside an id.
const relSep = "|"

// playerKey returns the Redis key for a player row
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersIndexKey returns the Redis key for the SET of a user's player ids
func playersIndexKey(owner model.UserID) string {
	return fmt.Sprintf("%s:idx:players:%s", keyPrefix, owner)
}

// groupKey returns the Redis key for a group row
func groupKey(id model.GroupID) string {
	return fmt.Sprintf("%s:group:%s", keyPrefix, id)
}

// groupsIndexKey returns the Redis key for the SET of a user's group ids
func groupsIndexKey(owner model.UserID) string {
	return fmt.Sprintf("%s:idx:groups:%s", keyPrefix, owner)
}

// membershipsKey returns the Redis key for the group-player relation ZSET
func membershipsKey() string {
	return fmt.Sprintf("%s:rel:group_players", keyPrefix)
}

// activePlayersKey returns the Redis key for a user's active-player ZSET
func activePlayersKey(owner model.UserID) string {
	return fmt.Sprintf("%s:active_players:%s", keyPrefix, owner)
}

// subPageKey returns the Redis key for a sub-page row
func subPageKey(id model.SubPageID) string {
	return fmt.Sprintf("%s:sub_page:%s", keyPrefix, id)
}

// subPagesIndexKey returns the Redis key for the SET of all sub-page ids
func subPagesIndexKey() string {
	return fmt.Sprintf("%s:idx:sub_pages", keyPrefix)
}

// attendanceKey returns the Redis key for the sub-page-player relation ZSET
func attendanceKey() string {
	return fmt.Sprintf("%s:rel:sub_page_players", keyPrefix)
}

// userKey returns the Redis key for a user row
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// relSeqKey returns the Redis key of the counter that scores relation
// ZSET members in insertion order
func relSeqKey() string {
	return fmt.Sprintf("%s:rel:seq", keyPrefix)
}

// relMember joins a relation pair into a ZSET member
func relMember(left, right string) string {
	return left + relSep + right
}

// splitRelMember splits a ZSET member back into its relation pair
func splitRelMember(member string) (string, string, bool) {
	left, right, ok := strings.Cut(member, relSep)
	return left, right, ok
}
