package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goodneighborlab/goodneighbor/internal/models"
)

const redisKeyPrefix = "gn:session:"

// RedisStore persists interaction records to Redis with a TTL, giving
// sessions a bounded lifetime that survives server restarts.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to the given Redis URL and verifies the
// connection with a ping.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

// Save serializes the record as JSON and refreshes the session TTL.
func (r *RedisStore) Save(ctx context.Context, sessionID string, rec *models.InteractionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshalling interaction record: %w", err)
	}

	if err := r.client.Set(ctx, redisKeyPrefix+sessionID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("saving interaction record: %w", err)
	}

	return nil
}

// Load reads and parses the stored record. Absence and parse failures
// both yield (nil, nil): restoration fails open to the empty state.
func (r *RedisStore) Load(ctx context.Context, sessionID string) (*models.InteractionRecord, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}

		return nil, fmt.Errorf("loading interaction record: %w", err)
	}

	var rec models.InteractionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		// Corrupted state is discarded rather than surfaced.
		return nil, nil
	}

	if rec.ViewTimestamps == nil {
		rec.ViewTimestamps = map[string][]int64{}
	}

	return &rec, nil
}

// Close releases the Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
