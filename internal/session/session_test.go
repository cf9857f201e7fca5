package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client connected to the test Valkey.
// Skips the test if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests to isolate from dev data.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test keys.
		for _, pattern := range []string{"session:*", "flash:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
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

func TestSessionCreateAndGet(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	w := httptest.NewRecorder()
	ctx := context.Background()

	sessionID, err := store.Create(ctx, w, &Data{SelectedClientID: "CLT-20251109-170052"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sessionID == "" {
		t.Error("expected non-empty session ID")
	}

	// Verify cookie was set.
	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			sessionCookie = c
			break
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session cookie to be set")
	}
	if !sessionCookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}

	// Get the session back.
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(sessionCookie)

	retrieved, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if retrieved == nil {
		t.Fatal("expected session data, got nil")
	}
	if retrieved.SelectedClientID != "CLT-20251109-170052" {
		t.Errorf("SelectedClientID = %q", retrieved.SelectedClientID)
	}
	if retrieved.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped on create")
	}
}

func TestSessionGetNoCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	req := httptest.NewRequest("GET", "/", nil)
	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get (no cookie): %v", err)
	}
	if data != nil {
		t.Error("expected nil for request without session cookie")
	}
}

func TestSessionGetExpired(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "nonexistent-session-id"})

	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get (expired): %v", err)
	}
	if data != nil {
		t.Error("expected nil for expired/nonexistent session")
	}
}

func TestSessionUpdate(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	w := httptest.NewRecorder()
	ctx := context.Background()

	data := &Data{}
	store.Create(ctx, w, data)
	cookie := w.Result().Cookies()[0]

	// Update: select a client.
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)

	data.SelectedClientID = "CLT-20251110-081500"
	if err := store.Update(ctx, req, data); err != nil {
		t.Fatalf("Update: %v", err)
	}

	retrieved, _ := store.Get(ctx, req)
	if retrieved == nil {
		t.Fatal("expected session after update")
	}
	if retrieved.SelectedClientID != "CLT-20251110-081500" {
		t.Errorf("SelectedClientID = %q after update", retrieved.SelectedClientID)
	}
}

func TestSessionUpdateNoCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	req := httptest.NewRequest("GET", "/", nil)
	if err := store.Update(context.Background(), req, &Data{}); err == nil {
		t.Error("expected error when updating without cookie")
	}
}

func TestSessionDestroy(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	w := httptest.NewRecorder()
	ctx := context.Background()

	store.Create(ctx, w, &Data{SelectedClientID: "CLT-1"})
	cookie := w.Result().Cookies()[0]

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)

	if err := store.Destroy(ctx, w2, req); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	// Verify cookie is expired.
	for _, c := range w2.Result().Cookies() {
		if c.Name == CookieName && c.MaxAge != -1 {
			t.Error("expected MaxAge=-1 on destroyed cookie")
		}
	}

	// Verify session is gone from Valkey.
	retrieved, _ := store.Get(ctx, req)
	if retrieved != nil {
		t.Error("expected nil after destroy")
	}
}

func TestSessionDestroyNoCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	if err := store.Destroy(context.Background(), w, req); err != nil {
		t.Errorf("Destroy (no cookie): %v", err)
	}
}

func TestFlashQueue(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	w := httptest.NewRecorder()
	ctx := context.Background()

	store.Create(ctx, w, &Data{})
	cookie := w.Result().Cookies()[0]

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)

	if err := store.AddFlash(ctx, req, Flash{Type: "success", Message: "post generated"}); err != nil {
		t.Fatalf("AddFlash: %v", err)
	}
	if err := store.AddFlash(ctx, req, Flash{Type: "error", Message: "delete failed"}); err != nil {
		t.Fatalf("AddFlash: %v", err)
	}

	flashes := store.PopFlashes(ctx, req)
	if len(flashes) != 2 {
		t.Fatalf("len(flashes) = %d, want 2", len(flashes))
	}
	if flashes[0].Message != "post generated" || flashes[1].Type != "error" {
		t.Errorf("flashes = %+v, want oldest first", flashes)
	}

	// Pop drains: a second pop must be empty.
	if again := store.PopFlashes(ctx, req); len(again) != 0 {
		t.Errorf("second pop returned %d flashes, want 0", len(again))
	}
}

func TestFlashQueueNoSession(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	req := httptest.NewRequest("GET", "/", nil)
	if err := store.AddFlash(context.Background(), req, Flash{Type: "success", Message: "x"}); err != nil {
		t.Errorf("AddFlash (no cookie): %v", err)
	}
	if flashes := store.PopFlashes(context.Background(), req); flashes != nil {
		t.Errorf("PopFlashes (no cookie) = %v", flashes)
	}
}
