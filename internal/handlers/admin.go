// Package handlers contains the HTTP handlers for the console. Handlers are
// grouped by concern (admin console, client portal) and receive their
// dependencies through the handler struct.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"postdesk/internal/backend"
	"postdesk/internal/cache"
	"postdesk/internal/models"
	"postdesk/internal/render"
	"postdesk/internal/session"
	"postdesk/internal/store"
	"postdesk/internal/workspace"
)

// Admin groups the console HTTP handlers and their dependencies.
type Admin struct {
	renderer  *render.Renderer
	sessions  *session.Store
	backend   *backend.Client
	ws        *workspace.Workspace
	snapshots *cache.SnapshotCache
	activity  *store.ActivityStore

	// lastGen remembers the most recent generation request so Regenerate
	// can replay it.
	mu      sync.Mutex
	lastGen *backend.GenerateRequest
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// snapshots and activity may be nil when Valkey or PostgreSQL are not
// configured; the console degrades to live-only data.
func NewAdmin(renderer *render.Renderer, sessions *session.Store, bc *backend.Client, ws *workspace.Workspace, snapshots *cache.SnapshotCache, activity *store.ActivityStore) *Admin {
	return &Admin{
		renderer:  renderer,
		sessions:  sessions,
		backend:   bc,
		ws:        ws,
		snapshots: snapshots,
		activity:  activity,
	}
}

// record logs a mutation to the activity store when one is configured.
func (h *Admin) record(ctx context.Context, action, resource, resourceID, detail string, succeeded bool) {
	if h.activity == nil {
		return
	}
	h.activity.Record(ctx, action, resource, resourceID, detail, succeeded)
}

// flash queues a notification for the next page the session sees.
func (h *Admin) flash(r *http.Request, kind, message string) {
	if err := h.sessions.AddFlash(r.Context(), r, session.Flash{Type: kind, Message: message}); err != nil {
		slog.Warn("flash queue failed", "error", err)
	}
}

// pageData assembles the common PageData fields, draining pending flashes.
func (h *Admin) pageData(r *http.Request, title, section string, data map[string]any) *render.PageData {
	return &render.PageData{
		Title:   title,
		Section: section,
		Data:    data,
		Flashes: h.sessions.PopFlashes(r.Context(), r),
	}
}

// refreshClients fetches the client list, updating the workspace and the
// snapshot cache. On fetch failure it falls back to the cached snapshot,
// then to whatever the workspace already holds.
func (h *Admin) refreshClients(ctx context.Context) ([]models.Client, error) {
	list, err := h.backend.ListClients(ctx)
	if err != nil {
		if cached, ok := h.cachedClients(ctx); ok {
			return cached, nil
		}
		return h.ws.Clients.Items(), err
	}
	h.ws.Clients.Replace(list)
	if h.snapshots != nil {
		h.snapshots.Set(ctx, "clients", list)
	}
	return list, nil
}

func (h *Admin) cachedClients(ctx context.Context) ([]models.Client, bool) {
	if h.snapshots == nil {
		return nil, false
	}
	var cached []models.Client
	if !h.snapshots.Get(ctx, "clients", &cached) {
		return nil, false
	}
	h.ws.Clients.Replace(cached)
	return cached, true
}

func (h *Admin) refreshCategories(ctx context.Context) ([]models.Category, error) {
	list, err := h.backend.ListCategories(ctx)
	if err != nil {
		if h.snapshots != nil {
			var cached []models.Category
			if h.snapshots.Get(ctx, "categories", &cached) {
				h.ws.Categories.Replace(cached)
				return cached, nil
			}
		}
		return h.ws.Categories.Items(), err
	}
	h.ws.Categories.Replace(list)
	if h.snapshots != nil {
		h.snapshots.Set(ctx, "categories", list)
	}
	return list, nil
}

func (h *Admin) refreshTopics(ctx context.Context) ([]models.Topic, error) {
	list, err := h.backend.ListTopics(ctx)
	if err != nil {
		if h.snapshots != nil {
			var cached []models.Topic
			if h.snapshots.Get(ctx, "topics", &cached) {
				h.ws.Topics.Replace(cached)
				return cached, nil
			}
		}
		return h.ws.Topics.Items(), err
	}
	h.ws.Topics.Replace(list)
	if h.snapshots != nil {
		h.snapshots.Set(ctx, "topics", list)
	}
	return list, nil
}

func (h *Admin) refreshPosts(ctx context.Context) ([]models.Post, error) {
	list, err := h.backend.ListPosts(ctx)
	if err != nil {
		if h.snapshots != nil {
			var cached []models.Post
			if h.snapshots.Get(ctx, "posts", &cached) {
				h.ws.Posts.Replace(cached)
				return cached, nil
			}
		}
		return h.ws.Posts.Items(), err
	}
	h.ws.Posts.Replace(list)
	if h.snapshots != nil {
		h.snapshots.Set(ctx, "posts", list)
	}
	return list, nil
}

// Dashboard shows resource counts and the recent activity trail.
func (h *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clients, _ := h.refreshClients(ctx)
	categories, _ := h.refreshCategories(ctx)
	topics, _ := h.refreshTopics(ctx)
	posts, _ := h.refreshPosts(ctx)

	var activity []models.Activity
	if h.activity != nil {
		var err error
		activity, err = h.activity.Recent(ctx, 20)
		if err != nil {
			slog.Warn("load recent activity", "error", err)
		}
	}

	h.renderer.Page(w, r, "dashboard", h.pageData(r, "Dashboard", "dashboard", map[string]any{
		"ClientCount":   len(clients),
		"CategoryCount": len(categories),
		"TopicCount":    len(topics),
		"PostCount":     len(posts),
		"Activity":      activity,
	}))
}

// Health reports liveness for load balancers.
func (h *Admin) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
