package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis creates a new Redis client
func NewRedis(addr, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	log.Printf("Redis client created (addr: %s)\n", addr)
	return rdb
}

// Snapshot caches a JSON-serializable value under a fixed key with a
// short TTL. A nil client or any redis error behaves like a miss, so the
// caller falls back to the database.
type Snapshot struct {
	RDB *redis.Client
	Key string
	TTL time.Duration
}

func (s *Snapshot) Get(ctx context.Context, dest interface{}) bool {
	if s == nil || s.RDB == nil {
		return false
	}
	raw, err := s.RDB.Get(ctx, s.Key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (s *Snapshot) Set(ctx context.Context, v interface{}) {
	if s == nil || s.RDB == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.RDB.Set(ctx, s.Key, raw, s.TTL).Err(); err != nil {
		log.Printf("cache set failed (key: %s): %v", s.Key, err)
	}
}
