package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/idempotency"
)

// staleAfter is how long a pending key blocks retries before it is reclaimed.
const staleAfter = time.Minute

type idempotencyRecord struct {
	idempotency.Request
	Status    idempotency.Status  `json:"status"`
	Replay    *idempotency.Replay `json:"replay,omitempty"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// IdempotencyStore keeps idempotency keys in Redis with a TTL.
type IdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewIdempotencyStore creates a Redis idempotency store.
func NewIdempotencyStore(client redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: ttl}
}

func idempotencyKey(key string) string {
	return keyPrefix + "idem:" + key
}

// AcquireKey implements idempotency.Store.
func (s *IdempotencyStore) AcquireKey(ctx context.Context, req idempotency.Request) (*idempotency.Replay, error) {
	now := time.Now().UTC()
	pending, err := json.Marshal(idempotencyRecord{Request: req, Status: idempotency.StatusPending, UpdatedAt: now})
	if err != nil {
		return nil, err
	}

	acquired, err := s.client.SetNX(ctx, idempotencyKey(req.Key), pending, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire idempotency key: %w", err)
	}
	if acquired {
		return nil, nil
	}

	raw, err := s.client.Get(ctx, idempotencyKey(req.Key)).Bytes()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET.
		return s.AcquireKey(ctx, req)
	}
	if err != nil {
		return nil, fmt.Errorf("read idempotency key: %w", err)
	}

	var rec idempotencyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode idempotency key: %w", err)
	}
	if !rec.Matches(req) {
		return nil, apperror.NewIdempotencyMismatch(req.Key).WithDetail("operation", req.Operation)
	}

	if rec.Status == idempotency.StatusSuccess && rec.Replay != nil {
		return rec.Replay.Normalize(), nil
	}
	if now.Sub(rec.UpdatedAt) > staleAfter {
		if err := s.client.Set(ctx, idempotencyKey(req.Key), pending, s.ttl).Err(); err != nil {
			return nil, fmt.Errorf("reclaim stale key: %w", err)
		}
		return nil, nil
	}
	return nil, apperror.NewIdempotencyConflict(req.Key)
}

// CompleteKey stores the response, keeping the key's remaining TTL.
func (s *IdempotencyStore) CompleteKey(ctx context.Context, key string, replay idempotency.Replay) error {
	raw, err := s.client.Get(ctx, idempotencyKey(key)).Bytes()
	if err != nil {
		return fmt.Errorf("read idempotency key: %w", err)
	}
	var rec idempotencyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return fmt.Errorf("decode idempotency key: %w", err)
	}

	rec.Status = idempotency.StatusSuccess
	rec.Replay = &replay
	rec.UpdatedAt = time.Now().UTC()
	done, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.SetArgs(ctx, idempotencyKey(key), done, redis.SetArgs{KeepTTL: true}).Err()
}

// ReleaseKey deletes the key so the client may retry.
func (s *IdempotencyStore) ReleaseKey(ctx context.Context, key string) error {
	return s.client.Del(ctx, idempotencyKey(key)).Err()
}

var _ idempotency.Store = (*IdempotencyStore)(nil)
