// snapshot.go provides a Valkey-backed cache of backend resource lists.
// Fetched collections are stored as JSON so a restarted console can show
// data before the first backend round trip completes. Mutations invalidate
// the affected resource.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// snapshotKeyPrefix is the Valkey key prefix for resource snapshots.
	snapshotKeyPrefix = "snapshot:"

	// DefaultSnapshotTTL is how long a resource snapshot stays cached.
	DefaultSnapshotTTL = 10 * time.Minute
)

// SnapshotCache stores JSON snapshots of backend resource lists in Valkey.
// All methods degrade to a miss or a no-op on cache errors; the backend
// remains the source of truth.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache creates a snapshot cache backed by the given Valkey client.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	if ttl == 0 {
		ttl = DefaultSnapshotTTL
	}
	return &SnapshotCache{client: client, ttl: ttl}
}

// Get loads the snapshot for a resource into out. Returns false on miss,
// decode failure, or cache error.
func (sc *SnapshotCache) Get(ctx context.Context, resource string, out any) bool {
	val, err := sc.client.Get(ctx, snapshotKeyPrefix+resource).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		slog.Warn("snapshot cache get error", "resource", resource, "error", err)
		return false
	}
	if err := json.Unmarshal(val, out); err != nil {
		slog.Warn("snapshot cache decode error", "resource", resource, "error", err)
		return false
	}
	slog.Debug("snapshot cache hit", "resource", resource)
	return true
}

// Set stores a freshly fetched resource list with the configured TTL.
func (sc *SnapshotCache) Set(ctx context.Context, resource string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("snapshot cache encode error", "resource", resource, "error", err)
		return
	}
	if err := sc.client.Set(ctx, snapshotKeyPrefix+resource, data, sc.ttl).Err(); err != nil {
		slog.Warn("snapshot cache set error", "resource", resource, "error", err)
	}
}

// Invalidate drops the snapshot for a resource after a mutation.
func (sc *SnapshotCache) Invalidate(ctx context.Context, resource string) {
	if err := sc.client.Del(ctx, snapshotKeyPrefix+resource).Err(); err != nil {
		slog.Warn("snapshot cache invalidate error", "resource", resource, "error", err)
	}
	slog.Debug("snapshot cache invalidated", "resource", resource)
}
