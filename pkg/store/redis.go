package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "nodeflow"

// RedisStore keeps records as JSON strings in Redis, one key per graph plus
// a set holding the name index. It suits multi-instance deployments where
// several API servers share one graph collection.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures a [RedisStore].
type RedisOption func(*RedisStore)

// WithClient injects an existing Redis client instead of dialing addr.
// Useful for cluster or sentinel topologies and for tests.
func WithClient(client redis.UniversalClient) RedisOption {
	return func(s *RedisStore) { s.client = client }
}

// WithKeyPrefix namespaces every key the store writes. The default prefix is
// "nodeflow".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// NewRedisStore connects to the Redis instance at addr ("host:port") and
// verifies the connection with a ping. Options may inject a preconfigured
// client, in which case addr is ignored.
func NewRedisStore(addr string, opts ...RedisOption) (*RedisStore, error) {
	s := &RedisStore{prefix: defaultRedisPrefix}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
	}
	if err := s.client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return s, nil
}

func (s *RedisStore) key(name string) string { return s.prefix + ":graph:" + name }

func (s *RedisStore) indexKey() string { return s.prefix + ":graphs" }

// Get retrieves a record by name.
func (s *RedisStore) Get(ctx context.Context, name string) (Record, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err == redis.Nil {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode record %s: %w", name, err)
	}
	return rec, nil
}

// Put stores or replaces a record and maintains the name index.
func (s *RedisStore) Put(ctx context.Context, rec Record) error {
	if prev, err := s.Get(ctx, rec.Name); err == nil {
		stamp(&rec, &prev)
	} else {
		stamp(&rec, nil)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(rec.Name), data, 0)
	pipe.SAdd(ctx, s.indexKey(), rec.Name)
	_, err = pipe.Exec(ctx)
	return err
}

// List returns the stored names in sorted order.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a record and its index entry.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.key(name))
	pipe.SRem(ctx, s.indexKey(), name)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error { return s.client.Close() }

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
