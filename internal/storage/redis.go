package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
)

// DefaultRedisKey is the key holding the state document
const DefaultRedisKey = "closest-arcade:state"

// RedisOptions configures a RedisStore
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// RedisStore keeps the state document under a single Redis key.
// SET replaces the value atomically, so a half-written document is never visible.
type RedisStore struct {
	client *redis.Client
	key    string
}

// Compile-time assertion that RedisStore implements Store.
var _ Store = (*RedisStore)(nil)

// NewRedisStore opens a Redis client for opts
func NewRedisStore(opts RedisOptions) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewRedisStoreWithClient(client, opts.Key)
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Ping checks the connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Load reads the state document. A GET failure is reported as ErrCorruptState so the
// cycle fails without stopping the loop.
func (s *RedisStore) Load(ctx context.Context) (*arcade.State, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading state from redis: %w", ErrCorruptState, err)
	}

	return decodeState(data)
}

// Save replaces the state document
func (s *RedisStore) Save(ctx context.Context, state *arcade.State) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("writing state to redis: %w", err)
	}
	return nil
}

// Close releases the client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
