package pending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "proposals:pending:"

// RedisStore keeps pending proposals in Redis so several bot instances share the
// wizard state. Expiry is delegated to Redis key TTLs.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed store with the given entry TTL.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (s *RedisStore) Put(ctx context.Context, p *Proposal) error {
	now := time.Now()
	p.CreatedAt = now
	p.ExpiresAt = now.Add(s.ttl)
	return s.write(ctx, p)
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Proposal, error) {
	raw, err := s.rdb.Get(ctx, redisKey(id)).Bytes()
	return decode(raw, err)
}

// SetFormat rewrites the entry only while the key still exists, so a Take that
// lands between the read and the write cannot resurrect a consumed proposal.
func (s *RedisStore) SetFormat(ctx context.Context, id, format string) (*Proposal, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Format = format
	p.ExpiresAt = time.Now().Add(s.ttl)

	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("pending: encode %s: %w", p.ID, err)
	}
	ok, err := s.rdb.SetXX(ctx, redisKey(id), raw, s.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *RedisStore) Take(ctx context.Context, id string) (*Proposal, error) {
	raw, err := s.rdb.GetDel(ctx, redisKey(id)).Bytes()
	return decode(raw, err)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, redisKey(id)).Err()
}

func (s *RedisStore) write(ctx context.Context, p *Proposal) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("pending: encode %s: %w", p.ID, err)
	}
	return s.rdb.Set(ctx, redisKey(p.ID), raw, s.ttl).Err()
}

func decode(raw []byte, err error) (*Proposal, error) {
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var p Proposal
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("pending: decode: %w", err)
	}
	return &p, nil
}
