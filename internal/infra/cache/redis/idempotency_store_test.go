package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

func TestIdempotencyStoreUnreachable(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	store := NewIdempotencyStore(client, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, _, err := store.Get(ctx, "k"); err == nil {
		t.Fatal("expected connection error")
	}
	if _, err := store.Reserve(ctx, "k"); err == nil {
		t.Fatal("expected reserve to surface the connection error")
	}
	if err := store.Ping(ctx); err == nil {
		t.Fatal("expected ping error")
	}
}
