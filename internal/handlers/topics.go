package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// TopicsPage shows categories with their topics plus the creation forms.
func (h *Admin) TopicsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, catErr := h.refreshCategories(ctx)
	topics, topErr := h.refreshTopics(ctx)
	if catErr != nil || topErr != nil {
		h.flash(r, "error", "Could not reach the backend; showing last known data.")
	}

	h.renderer.Page(w, r, "topics", h.pageData(r, "Topics", "topics", map[string]any{
		"Categories": categories,
		"Topics":     topics,
	}))
}

// CategoryCreate adds a category. The backend returns no entity, so the
// next page load re-fetches the list.
func (h *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := strings.TrimSpace(r.FormValue("category_name"))
	if name == "" {
		h.flash(r, "error", "Category name is required.")
		http.Redirect(w, r, "/topics", http.StatusSeeOther)
		return
	}

	if err := h.backend.CreateCategory(ctx, name); err != nil {
		slog.Error("create category", "error", err)
		h.record(ctx, "create", "category", "", name, false)
		h.flash(r, "error", "Creating the category failed.")
		http.Redirect(w, r, "/topics", http.StatusSeeOther)
		return
	}

	h.record(ctx, "create", "category", "", name, true)
	if h.snapshots != nil {
		h.snapshots.Invalidate(ctx, "categories")
	}
	h.flash(r, "success", "Category created.")
	http.Redirect(w, r, "/topics", http.StatusSeeOther)
}

// TopicCreate adds a topic under a category. Without a selected category
// no request is issued at all.
func (h *Admin) TopicCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categoryID := strings.TrimSpace(r.FormValue("category_id"))
	title := strings.TrimSpace(r.FormValue("title"))
	description := r.FormValue("description")

	if categoryID == "" || title == "" {
		h.flash(r, "error", "Pick a category and give the topic a title.")
		http.Redirect(w, r, "/topics", http.StatusSeeOther)
		return
	}

	if err := h.backend.CreateTopic(ctx, categoryID, title, description); err != nil {
		slog.Error("create topic", "category_id", categoryID, "error", err)
		h.record(ctx, "create", "topic", "", title, false)
		h.flash(r, "error", "Creating the topic failed.")
		http.Redirect(w, r, "/topics", http.StatusSeeOther)
		return
	}

	h.record(ctx, "create", "topic", "", title, true)
	if h.snapshots != nil {
		h.snapshots.Invalidate(ctx, "topics")
	}
	h.flash(r, "success", "Topic created.")
	http.Redirect(w, r, "/topics", http.StatusSeeOther)
}

// TopicDelete removes one topic and patches the local list.
func (h *Admin) TopicDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.backend.DeleteTopic(ctx, id); err != nil {
		slog.Error("delete topic", "topic_id", id, "error", err)
		h.record(ctx, "delete", "topic", id, "", false)
		h.flash(r, "error", "Deleting the topic failed.")
		http.Redirect(w, r, "/topics", http.StatusSeeOther)
		return
	}

	h.ws.Topics.Remove(id)
	if h.snapshots != nil {
		h.snapshots.Invalidate(ctx, "topics")
	}

	h.record(ctx, "delete", "topic", id, "", true)
	h.flash(r, "success", "Topic deleted.")
	http.Redirect(w, r, "/topics", http.StatusSeeOther)
}
