package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"postdesk/internal/models"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "snapshot:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestSnapshotSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	sc := NewSnapshotCache(client, 1*time.Minute)

	ctx := context.Background()

	// Miss.
	var clients []models.Client
	if sc.Get(ctx, "clients", &clients) {
		t.Error("expected cache miss")
	}

	// Set.
	stored := []models.Client{
		{ID: "CLT-20251109-170052", Name: "Acme Soap"},
		{ID: "CLT-20251110-081500", Name: "Birch Cafe"},
	}
	sc.Set(ctx, "clients", stored)

	// Hit.
	if !sc.Get(ctx, "clients", &clients) {
		t.Fatal("expected cache hit")
	}
	if len(clients) != 2 || clients[0].Name != "Acme Soap" {
		t.Errorf("clients = %+v", clients)
	}
}

func TestSnapshotInvalidate(t *testing.T) {
	client := testValkeyClient(t)
	sc := NewSnapshotCache(client, 1*time.Minute)

	ctx := context.Background()

	sc.Set(ctx, "posts", []models.Post{{ID: "p-1"}})

	var posts []models.Post
	if !sc.Get(ctx, "posts", &posts) {
		t.Fatal("expected cache hit before invalidation")
	}

	sc.Invalidate(ctx, "posts")

	if sc.Get(ctx, "posts", &posts) {
		t.Error("expected cache miss after invalidation")
	}
}

func TestSnapshotPreservesFinalizedWireFormat(t *testing.T) {
	client := testValkeyClient(t)
	sc := NewSnapshotCache(client, 1*time.Minute)

	ctx := context.Background()

	sc.Set(ctx, "posts", []models.Post{{ID: "p-1", Finalized: true}})

	var posts []models.Post
	if !sc.Get(ctx, "posts", &posts) {
		t.Fatal("expected cache hit")
	}
	if len(posts) != 1 || !bool(posts[0].Finalized) {
		t.Errorf("posts = %+v, finalized flag lost in round trip", posts)
	}
}

func TestNewSnapshotCacheDefaultTTL(t *testing.T) {
	client := testValkeyClient(t)

	// TTL = 0 should use default.
	sc := NewSnapshotCache(client, 0)
	if sc.ttl != DefaultSnapshotTTL {
		t.Errorf("expected DefaultSnapshotTTL (%v), got %v", DefaultSnapshotTTL, sc.ttl)
	}
}
