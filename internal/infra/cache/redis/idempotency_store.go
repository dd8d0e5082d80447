package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"homestay/internal/app/middleware"
)

const (
	keyPrefix = "homestay:idemp:"
	// pendingMarker is the value of a claimed key whose command has not finished.
	pendingMarker = "pending"
)

// releaseScript deletes a key only while it still holds a claim, so a finished record survives.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// IdempotencyStore keeps records as JSON strings that expire after ttl. Claims are plain markers
// set with SETNX and expire after middleware.ReservationLease.
type IdempotencyStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

func NewClient(addr string, db int) *goredis.Client {
	return goredis.NewClient(&goredis.Options{Addr: addr, DB: db})
}

func NewIdempotencyStore(client goredis.UniversalClient, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: ttl}
}

type record struct {
	Key        string    `json:"key"`
	Payload    []byte    `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	raw, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return middleware.IdempotencyRecord{}, false, nil
		}
		return middleware.IdempotencyRecord{}, false, err
	}
	if string(raw) == pendingMarker {
		return middleware.IdempotencyRecord{Key: key, Pending: true}, true, nil
	}
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return middleware.IdempotencyRecord{}, false, err
	}
	return middleware.IdempotencyRecord{Key: rec.Key, Payload: rec.Payload, OccurredAt: rec.OccurredAt}, true, nil
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	return s.client.SetNX(ctx, keyPrefix+key, pendingMarker, middleware.ReservationLease).Result()
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return releaseScript.Run(ctx, s.client, []string{keyPrefix + key}, pendingMarker).Err()
}

func (s *IdempotencyStore) Save(ctx context.Context, rec middleware.IdempotencyRecord) error {
	raw, err := json.Marshal(record{Key: rec.Key, Payload: rec.Payload, OccurredAt: rec.OccurredAt})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+rec.Key, raw, s.ttl).Err()
}

// Ping is used by the readiness probe.
func (s *IdempotencyStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
