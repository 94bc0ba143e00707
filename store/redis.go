package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisCell is a [Cell] backed by a single Redis string key.
type RedisCell struct {
	client *redis.Client
	key    string
}

// NewRedisCell creates a cell stored at "<prefix>:cell:<name>".
func NewRedisCell(client *redis.Client, prefix, name string) *RedisCell {
	return &RedisCell{
		client: client,
		key:    fmt.Sprintf("%s:cell:%s", prefix, name),
	}
}

// Get describes the get operation and its observable behavior.
func (c *RedisCell) Get(ctx context.Context) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Join(ErrUnavailable, err)
	}
	return data, true, nil
}

// Set describes the set operation and its observable behavior.
func (c *RedisCell) Set(ctx context.Context, value []byte) error {
	if err := c.client.Set(ctx, c.key, value, 0).Err(); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// RedisMap is a [Map] backed by a Redis hash.
type RedisMap struct {
	client *redis.Client
	key    string
}

// NewRedisMap creates a map stored at "<prefix>:map:<name>".
func NewRedisMap(client *redis.Client, prefix, name string) *RedisMap {
	return &RedisMap{
		client: client,
		key:    fmt.Sprintf("%s:map:%s", prefix, name),
	}
}

// Get describes the get operation and its observable behavior.
func (m *RedisMap) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := m.client.HGet(ctx, m.key, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Join(ErrUnavailable, err)
	}
	return data, true, nil
}

// Insert describes the insert operation and its observable behavior.
func (m *RedisMap) Insert(ctx context.Context, key string, value []byte) error {
	if err := m.client.HSet(ctx, m.key, key, value).Err(); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// Remove describes the remove operation and its observable behavior.
func (m *RedisMap) Remove(ctx context.Context, key string) error {
	if err := m.client.HDel(ctx, m.key, key).Err(); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// Contains describes the contains operation and its observable behavior.
func (m *RedisMap) Contains(ctx context.Context, key string) (bool, error) {
	ok, err := m.client.HExists(ctx, m.key, key).Result()
	if err != nil {
		return false, errors.Join(ErrUnavailable, err)
	}
	return ok, nil
}

// Len describes the len operation and its observable behavior.
func (m *RedisMap) Len(ctx context.Context) (int64, error) {
	n, err := m.client.HLen(ctx, m.key).Result()
	if err != nil {
		return 0, errors.Join(ErrUnavailable, err)
	}
	return n, nil
}
