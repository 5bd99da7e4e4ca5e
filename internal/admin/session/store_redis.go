package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "admin_session:"

// sessionJSON is the wire form stored in Redis.
type sessionJSON struct {
	ID                string `json:"id"`
	Actor             string `json:"actor"`
	DeviceDisplayName string `json:"device_display_name"`
	CreatedAtUnix     int64  `json:"created_at"`
}

// RedisStore persists sessions in Redis so logins survive restarts and are
// shared across instances. Keys carry no TTL: a session ends only at logout.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed session store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sessionJSON{
		ID:                sess.ID,
		Actor:             sess.Actor,
		DeviceDisplayName: sess.DeviceDisplayName,
		CreatedAtUnix:     sess.CreatedAtUnix,
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sess.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session by id: %w", err)
	}

	var j sessionJSON
	if err := json.Unmarshal([]byte(data), &j); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &Session{
		ID:                j.ID,
		Actor:             j.Actor,
		DeviceDisplayName: j.DeviceDisplayName,
		CreatedAtUnix:     j.CreatedAtUnix,
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	deleted, err := s.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}
