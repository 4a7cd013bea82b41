package state

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vyborpervykh/estatebot/core/logger"
)

const (
	sessionKeyPrefix = "session:"
	defaultTTL       = 24 * time.Hour
	redisOpTimeout   = 2 * time.Second
)

type redisManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisManager constructs a Manager backed by Redis. Sessions survive
// restarts and are shared between instances. TTL is refreshed on every read
// and write; a failed Redis call degrades to an idle session instead of
// breaking the conversation.
func NewRedisManager(client *redis.Client, ttl time.Duration) Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &redisManager{
		client: client,
		ttl:    ttl,
	}
}

func (m *redisManager) key(userID int64) string {
	return sessionKeyPrefix + strconv.FormatInt(userID, 10)
}

func (m *redisManager) load(userID int64) *Session {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	key := m.key(userID)
	val, err := m.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		logger.Warn(logger.Background(), "tg.state", "session.load_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil
	}

	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		logger.Warn(logger.Background(), "tg.state", "session.decode_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil
	}
	if sess.Data == nil {
		sess.Data = make(map[string]any)
	}

	// Refresh TTL on read; losing the refresh is not fatal.
	_ = m.client.Expire(ctx, key, m.ttl).Err()

	return &sess
}

func (m *redisManager) store(userID int64, sess *Session) {
	val, err := json.Marshal(sess)
	if err != nil {
		logger.Warn(logger.Background(), "tg.state", "session.encode_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := m.client.Set(ctx, m.key(userID), val, m.ttl).Err(); err != nil {
		logger.Warn(logger.Background(), "tg.state", "session.store_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
}

// Get returns the session state and scratch data, or an idle session if
// nothing is stored or Redis is unavailable.
func (m *redisManager) Get(userID int64) (State, map[string]any) {
	sess := m.load(userID)
	if sess == nil {
		return StateIdle, map[string]any{}
	}
	return sess.State, sess.Data
}

// Apply sets the state and merges the patch into the stored scratch data.
func (m *redisManager) Apply(userID int64, st State, patch map[string]any) {
	sess := m.load(userID)
	if sess == nil {
		sess = &Session{Data: make(map[string]any)}
	}
	sess.State = st
	for k, v := range patch {
		sess.Data[k] = v
	}
	m.store(userID, sess)
}

// SetState updates only the state, keeping scratch data intact.
func (m *redisManager) SetState(userID int64, st State) {
	sess := m.load(userID)
	if sess == nil {
		sess = &Session{Data: make(map[string]any)}
	}
	sess.State = st
	m.store(userID, sess)
}

// GetState returns the current state of a user, or StateIdle if none exists.
func (m *redisManager) GetState(userID int64) State {
	sess := m.load(userID)
	if sess == nil {
		return StateIdle
	}
	return sess.State
}

// Clear removes the entire session for a user.
func (m *redisManager) Clear(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := m.client.Del(ctx, m.key(userID)).Err(); err != nil {
		logger.Warn(logger.Background(), "tg.state", "session.clear_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
}

// InProgress reports whether the user currently has an active conversation.
func (m *redisManager) InProgress(userID int64) bool {
	return m.GetState(userID) != StateIdle
}
