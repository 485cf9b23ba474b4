package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bartdebruin-tp/matchmaker/internal/model"
	"github.com/bartdebruin-tp/matchmaker/internal/remote"
)

// Store is a Redis-backed implementation of the remote store interface.
// Rows are JSON values indexed by per-table sets; the relation tables are
// ZSETs scored by a shared insertion counter, so ZADD NX gives the
// uniqueness constraint on relation pairs for free and ZRANGE returns
// rows in insertion order.
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis store instance
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ remote.Store = (*Store)(nil)

// Row shapes as stored in Redis

type playerRow struct {
	ID        model.PlayerID `json:"id"`
	OwnerID   model.UserID   `json:"owner_id"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
}

type groupRow struct {
	ID        model.GroupID   `json:"id"`
	OwnerID   model.UserID    `json:"owner_id"`
	Name      string          `json:"name"`
	Color     string          `json:"color"`
	MatchType model.MatchType `json:"match_type"`
	CreatedAt time.Time       `json:"created_at"`
}

type subPageRow struct {
	ID        model.SubPageID `json:"id"`
	GroupID   model.GroupID   `json:"group_id"`
	Name      string          `json:"name"`
	Date      *time.Time      `json:"date,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Player operations

func (s *Store) SelectPlayers(ctx context.Context, owner model.UserID) ([]model.Player, error) {
	rows, err := s.loadRows(ctx, playersIndexKey(owner), func(id string) string {
		return playerKey(model.PlayerID(id))
	})
	if err != nil {
		return nil, err
	}

	var players []model.Player
	for _, data := range rows {
		var row playerRow
		if err := json.Unmarshal(data, &row); err != nil {
			return nil, err
		}
		players = append(players, model.Player{
			ID:        row.ID,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
		})
	}
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].CreatedAt.Before(players[j].CreatedAt)
	})
	return players, nil
}

func (s *Store) InsertPlayer(ctx context.Context, owner model.UserID, player model.Player) error {
	data, err := json.Marshal(playerRow{
		ID:        player.ID,
		OwnerID:   owner,
		Name:      player.Name,
		CreatedAt: player.CreatedAt,
	})
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.SAdd(ctx, playersIndexKey(owner), string(player.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) UpdatePlayer(ctx context.Context, owner model.UserID, id model.PlayerID, name string) error {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil // filter matched no row
		}
		return err
	}

	var row playerRow
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	if row.OwnerID != owner {
		return nil
	}

	row.Name = name
	updated, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, playerKey(id), updated, 0).Err()
}

func (s *Store) DeletePlayer(ctx context.Context, owner model.UserID, id model.PlayerID) error {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil // filter matched no row
		}
		return err
	}

	var row playerRow
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	if row.OwnerID != owner {
		return nil
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(id))
	pipe.SRem(ctx, playersIndexKey(owner), string(id))
	pipe.ZRem(ctx, activePlayersKey(owner), string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	// Cascade relation rows referencing the player
	if err := s.dropRelationMembers(ctx, membershipsKey(), func(member string) bool {
		_, playerID, ok := splitRelMember(member)
		return ok && playerID == string(id)
	}); err != nil {
		return err
	}
	return s.dropRelationMembers(ctx, attendanceKey(), func(member string) bool {
		_, playerID, ok := splitRelMember(member)
		return ok && playerID == string(id)
	})
}

// Group operations

func (s *Store) SelectGroups(ctx context.Context, owner model.UserID) ([]model.Group, error) {
	rows, err := s.loadRows(ctx, groupsIndexKey(owner), func(id string) string {
		return groupKey(model.GroupID(id))
	})
	if err != nil {
		return nil, err
	}

	var groups []model.Group
	for _, data := range rows {
		var row groupRow
		if err := json.Unmarshal(data, &row); err != nil {
			return nil, err
		}
		groups = append(groups, model.Group{
			ID:        row.ID,
			Name:      row.Name,
			Color:     row.Color,
			MatchType: row.MatchType,
			CreatedAt: row.CreatedAt,
		})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].CreatedAt.Before(groups[j].CreatedAt)
	})
	return groups, nil
}

func (s *Store) InsertGroup(ctx context.Context, owner model.UserID, group model.Group) error {
	data, err := json.Marshal(groupRow{
		ID:        group.ID,
		OwnerID:   owner,
		Name:      group.Name,
		Color:     group.Color,
		MatchType: group.MatchType,
		CreatedAt: group.CreatedAt,
	})
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, groupKey(group.ID), data, 0)
	pipe.SAdd(ctx, groupsIndexKey(owner), string(group.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) UpdateGroup(ctx context.Context, owner model.UserID, id model.GroupID, name, color string) error {
	data, err := s.client.Get(ctx, groupKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	var row groupRow
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	if row.OwnerID != owner {
		return nil
	}

	row.Name = name
	row.Color = color
	updated, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, groupKey(id), updated, 0).Err()
}

func (s *Store) DeleteGroup(ctx context.Context, owner model.UserID, id model.GroupID) error {
	data, err := s.client.Get(ctx, groupKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	var row groupRow
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	if row.OwnerID != owner {
		return nil
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, groupKey(id))
	pipe.SRem(ctx, groupsIndexKey(owner), string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	if err := s.dropRelationMembers(ctx, membershipsKey(), func(member string) bool {
		groupID, _, ok := splitRelMember(member)
		return ok && groupID == string(id)
	}); err != nil {
		return err
	}

	// Cascade the group's sub-pages
	subPages, err := s.SelectSubPages(ctx)
	if err != nil {
		return err
	}
	for _, sp := range subPages {
		if sp.GroupID == id {
			if err := s.DeleteSubPage(ctx, sp.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// Group membership relation

func (s *Store) SelectGroupMemberships(ctx context.Context) ([]model.GroupMembership, error) {
	members, err := s.client.ZRange(ctx, membershipsKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var result []model.GroupMembership
	for _, member := range members {
		groupID, playerID, ok := splitRelMember(member)
		if !ok {
			continue
		}
		result = append(result, model.GroupMembership{
			GroupID:  model.GroupID(groupID),
			PlayerID: model.PlayerID(playerID),
		})
	}
	return result, nil
}

func (s *Store) InsertGroupMembership(ctx context.Context, m model.GroupMembership) error {
	score, err := s.nextRelScore(ctx)
	if err != nil {
		return err
	}
	return s.client.ZAddNX(ctx, membershipsKey(), redis.Z{
		Score:  score,
		Member: relMember(string(m.GroupID), string(m.PlayerID)),
	}).Err()
}

func (s *Store) DeleteGroupMembership(ctx context.Context, groupID model.GroupID, playerID model.PlayerID) error {
	return s.client.ZRem(ctx, membershipsKey(), relMember(string(groupID), string(playerID))).Err()
}

// Active player operations

func (s *Store) SelectActivePlayers(ctx context.Context, owner model.UserID) ([]model.PlayerID, error) {
	members, err := s.client.ZRange(ctx, activePlayersKey(owner), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var ids []model.PlayerID
	for _, member := range members {
		ids = append(ids, model.PlayerID(member))
	}
	return ids, nil
}

func (s *Store) InsertActivePlayer(ctx context.Context, owner model.UserID, playerID model.PlayerID) error {
	score, err := s.nextRelScore(ctx)
	if err != nil {
		return err
	}
	return s.client.ZAddNX(ctx, activePlayersKey(owner), redis.Z{
		Score:  score,
		Member: string(playerID),
	}).Err()
}

func (s *Store) DeleteActivePlayer(ctx context.Context, owner model.UserID, playerID model.PlayerID) error {
	return s.client.ZRem(ctx, activePlayersKey(owner), string(playerID)).Err()
}

func (s *Store) DeleteActivePlayers(ctx context.Context, owner model.UserID) error {
	return s.client.Del(ctx, activePlayersKey(owner)).Err()
}

// Sub-page operations

func (s *Store) SelectSubPages(ctx context.Context) ([]model.SubPage, error) {
	rows, err := s.loadRows(ctx, subPagesIndexKey(), func(id string) string {
		return subPageKey(model.SubPageID(id))
	})
	if err != nil {
		return nil, err
	}

	var subPages []model.SubPage
	for _, data := range rows {
		var row subPageRow
		if err := json.Unmarshal(data, &row); err != nil {
			return nil, err
		}
		subPages = append(subPages, model.SubPage{
			ID:        row.ID,
			GroupID:   row.GroupID,
			Name:      row.Name,
			Date:      row.Date,
			CreatedAt: row.CreatedAt,
		})
	}
	sort.SliceStable(subPages, func(i, j int) bool {
		return subPages[i].CreatedAt.After(subPages[j].CreatedAt)
	})
	return subPages, nil
}

func (s *Store) InsertSubPage(ctx context.Context, subPage model.SubPage) error {
	data, err := json.Marshal(subPageRow{
		ID:        subPage.ID,
		GroupID:   subPage.GroupID,
		Name:      subPage.Name,
		Date:      subPage.Date,
		CreatedAt: subPage.CreatedAt,
	})
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, subPageKey(subPage.ID), data, 0)
	pipe.SAdd(ctx, subPagesIndexKey(), string(subPage.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) UpdateSubPage(ctx context.Context, id model.SubPageID, name string, date *time.Time) error {
	data, err := s.client.Get(ctx, subPageKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	var row subPageRow
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}

	row.Name = name
	row.Date = date
	updated, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, subPageKey(id), updated, 0).Err()
}

func (s *Store) DeleteSubPage(ctx context.Context, id model.SubPageID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, subPageKey(id))
	pipe.SRem(ctx, subPagesIndexKey(), string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	return s.dropRelationMembers(ctx, attendanceKey(), func(member string) bool {
		subPageID, _, ok := splitRelMember(member)
		return ok && subPageID == string(id)
	})
}

// Attendance relation

func (s *Store) SelectAttendance(ctx context.Context, subPageIDs []model.SubPageID) ([]model.Attendance, error) {
	if len(subPageIDs) == 0 {
		return nil, nil
	}
	wanted := make(map[model.SubPageID]struct{}, len(subPageIDs))
	for _, id := range subPageIDs {
		wanted[id] = struct{}{}
	}

	members, err := s.client.ZRange(ctx, attendanceKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var result []model.Attendance
	for _, member := range members {
		subPageID, playerID, ok := splitRelMember(member)
		if !ok {
			continue
		}
		if _, ok := wanted[model.SubPageID(subPageID)]; !ok {
			continue
		}
		result = append(result, model.Attendance{
			SubPageID: model.SubPageID(subPageID),
			PlayerID:  model.PlayerID(playerID),
		})
	}
	return result, nil
}

func (s *Store) InsertAttendance(ctx context.Context, a model.Attendance) error {
	score, err := s.nextRelScore(ctx)
	if err != nil {
		return err
	}
	return s.client.ZAddNX(ctx, attendanceKey(), redis.Z{
		Score:  score,
		Member: relMember(string(a.SubPageID), string(a.PlayerID)),
	}).Err()
}

func (s *Store) DeleteAttendance(ctx context.Context, subPageID model.SubPageID, playerID model.PlayerID) error {
	return s.client.ZRem(ctx, attendanceKey(), relMember(string(subPageID), string(playerID))).Err()
}

// User operations

func (s *Store) InsertUser(ctx context.Context, user model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, emailIndexKey(strings.ToLower(user.Email)), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	userID, err := s.client.Get(ctx, emailIndexKey(strings.ToLower(email))).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.User{}, model.ErrUserNotFound
		}
		return model.User{}, err
	}

	data, err := s.client.Get(ctx, userKey(model.UserID(userID))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.User{}, model.ErrUserNotFound
		}
		return model.User{}, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// loadRows fetches every row listed in an index set
func (s *Store) loadRows(ctx context.Context, indexKey string, rowKey func(id string) string) ([][]byte, error) {
	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = rowKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	var rows [][]byte
	for _, value := range values {
		str, ok := value.(string)
		if !ok {
			continue // row expired or deleted; index entry is stale
		}
		rows = append(rows, []byte(str))
	}
	return rows, nil
}

// nextRelScore returns the next value of the shared relation counter.
// Scoring ZSET members with it keeps relation rows in insertion order
// across processes.
func (s *Store) nextRelScore(ctx context.Context) (float64, error) {
	seq, err := s.client.Incr(ctx, relSeqKey()).Result()
	if err != nil {
		return 0, err
	}
	return float64(seq), nil
}

// dropRelationMembers removes every member of a relation ZSET matching
// the predicate
func (s *Store) dropRelationMembers(ctx context.Context, key string, match func(member string) bool) error {
	members, err := s.client.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return err
	}

	var doomed []interface{}
	for _, member := range members {
		if match(member) {
			doomed = append(doomed, member)
		}
	}
	if len(doomed) == 0 {
		return nil
	}
	return s.client.ZRem(ctx, key, doomed...).Err()
}
