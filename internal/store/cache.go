package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = Collection + ":"

// CachedStore is a read-through Redis cache in front of another FactStore.
// Cache failures degrade to the backing store; they never fail a lookup.
// Misses are not cached.
type CachedStore struct {
	next FactStore
	rdb  *redis.Client
	ttl  time.Duration
	log  *zap.Logger
}

func NewCachedStore(next FactStore, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *CachedStore {
	return &CachedStore{next: next, rdb: rdb, ttl: ttl, log: log}
}

func (s *CachedStore) FindFact(ctx context.Context, key string) (*Fact, error) {
	ck := cacheKeyPrefix + key

	data, err := s.rdb.Get(ctx, ck).Bytes()
	switch {
	case err == nil:
		var f Fact
		if jsonErr := json.Unmarshal(data, &f); jsonErr == nil {
			return &f, nil
		}
		s.log.Warn("cache: dropping undecodable entry", zap.String("key", key))
		s.rdb.Del(ctx, ck)
	case !errors.Is(err, redis.Nil):
		s.log.Warn("cache: get failed", zap.String("key", key), zap.Error(err))
	}

	f, err := s.next.FindFact(ctx, key)
	if err != nil || f == nil {
		return f, err
	}

	if payload, err := json.Marshal(f); err == nil {
		if err := s.rdb.Set(ctx, ck, payload, s.ttl).Err(); err != nil {
			s.log.Warn("cache: set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return f, nil
}

func (s *CachedStore) ListFacts(ctx context.Context) ([]Fact, error) {
	return s.next.ListFacts(ctx)
}

// ReplaceAll rewrites the backing store and then evicts every cached fact.
func (s *CachedStore) ReplaceAll(ctx context.Context, facts []Fact) error {
	if err := s.next.ReplaceAll(ctx, facts); err != nil {
		return err
	}
	if err := s.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidating fact cache: %w", err)
	}
	return nil
}

// Invalidate removes every cached fact entry.
func (s *CachedStore) Invalidate(ctx context.Context) error {
	iter := s.rdb.Scan(ctx, 0, cacheKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

func (s *CachedStore) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		s.log.Warn("cache: ping failed", zap.Error(err))
	}
	return s.next.Ping(ctx)
}

// Close closes the backing store and the Redis client.
func (s *CachedStore) Close() error {
	return errors.Join(s.next.Close(), s.rdb.Close())
}
