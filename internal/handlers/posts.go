package handlers

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"postdesk/internal/backend"
	"postdesk/internal/forms"
	"postdesk/internal/imaging"
)

// maxUploadSize bounds reference image uploads (10 MiB).
const maxUploadSize = 10 << 20

// PostsPage shows the generation form, the post in the editor, and the
// saved collection.
func (h *Admin) PostsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clients, _ := h.refreshClients(ctx)
	categories, _ := h.refreshCategories(ctx)
	topics, _ := h.refreshTopics(ctx)
	posts, err := h.refreshPosts(ctx)
	if err != nil {
		h.flash(r, "error", "Could not reach the backend; showing last known data.")
	}

	data := map[string]any{
		"Clients":      clients,
		"Categories":   categories,
		"Topics":       topics,
		"Posts":        posts,
		"VisualStyles": forms.VisualStyles,
	}
	if current, caption, ok := h.ws.Current(); ok {
		data["Current"] = &current
		data["Caption"] = caption
	}

	h.renderer.Page(w, r, "posts", h.pageData(r, "Posts", "posts", data))
}

// PostGenerate runs one generation. A reference image, when attached, is
// uploaded first; if that upload fails the generation still proceeds
// without it.
func (h *Admin) PostGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form := forms.ParseGenerateForm(r.PostForm)
	if missing := form.Missing(); len(missing) > 0 {
		h.flash(r, "error", "Missing required selections: "+strings.Join(missing, ", ")+".")
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
		return
	}

	refImageURL := ""
	if file, header, err := r.FormFile("reference_image"); err == nil {
		defer file.Close()
		url, upErr := h.uploadReference(ctx, form.ClientID, header.Filename, file)
		if upErr != nil {
			slog.Warn("reference image upload failed, generating without it", "error", upErr)
		} else {
			refImageURL = url
		}
	}

	req := form.Request(refImageURL)
	h.generate(w, r, req)
}

// uploadReference normalizes the attached image and sends it to the
// backend. When normalization fails the original bytes go up unchanged;
// the backend decides whether it can use them.
func (h *Admin) uploadReference(ctx context.Context, clientID, filename string, file io.Reader) (string, error) {
	raw, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	if normalized, err := imaging.Normalize(raw); err != nil {
		slog.Warn("reference image normalize failed, uploading original", "error", err)
	} else {
		raw = normalized
		filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".webp"
	}

	return h.backend.UploadImage(ctx, clientID, filename, bytes.NewReader(raw))
}

// PostRegenerate replays the last generation request. Finalized posts
// cannot be regenerated over.
func (h *Admin) PostRegenerate(w http.ResponseWriter, r *http.Request) {
	if current, _, ok := h.ws.Current(); ok && bool(current.Finalized) {
		h.flash(r, "error", "This post is finalized; generate a new one instead.")
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
		return
	}

	h.mu.Lock()
	req := h.lastGen
	h.mu.Unlock()
	if req == nil {
		h.flash(r, "error", "Nothing to regenerate yet.")
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
		return
	}

	h.generate(w, r, *req)
}

// generate issues the backend call and installs the result.
func (h *Admin) generate(w http.ResponseWriter, r *http.Request, req backend.GenerateRequest) {
	ctx := r.Context()

	posts, err := h.backend.GeneratePosts(ctx, req)
	if err != nil {
		slog.Error("generate posts", "client_id", req.ClientID, "error", err)
		h.record(ctx, "generate", "post", "", req.VisualStyle, false)
		h.flash(r, "error", "Generation failed. Try again.")
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
		return
	}

	h.ws.AppendGenerated(posts)
	h.mu.Lock()
	h.lastGen = &req
	h.mu.Unlock()
	if h.snapshots != nil {
		h.snapshots.Invalidate(ctx, "posts")
	}

	h.record(ctx, "generate", "post", posts[0].ID, req.VisualStyle, true)
	h.flash(r, "success", "Post generated.")
	http.Redirect(w, r, "/posts", http.StatusSeeOther)
}

// PostCaption saves the edited caption for the post in the editor. The
// form addresses a specific post; if the editor holds a different post
// by the time the form lands, nothing is changed.
func (h *Admin) PostCaption(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if current, _, ok := h.ws.Current(); !ok || current.ID != id {
		h.flash(r, "error", "That post is no longer in the editor.")
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
		return
	}

	if err := h.ws.SetCaption(r.FormValue("caption")); err != nil {
		h.flash(r, "error", "The caption can no longer be edited.")
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
		return
	}
	h.flash(r, "success", "Caption saved.")
	http.Redirect(w, r, "/posts", http.StatusSeeOther)
}

// PostFinalize approves a post. On success every in-memory copy is
// patched: the saved collection and the editor slot.
func (h *Admin) PostFinalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	clientID := r.FormValue("client_id")

	if err := h.backend.FinalizePost(ctx, clientID, id); err != nil {
		slog.Error("finalize post", "post_id", id, "error", err)
		h.record(ctx, "finalize", "post", id, "", false)
		h.flash(r, "error", "Finalizing the post failed.")
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
		return
	}

	h.ws.Finalize(id)
	if h.snapshots != nil {
		h.snapshots.Invalidate(ctx, "posts")
	}

	h.record(ctx, "finalize", "post", id, "", true)
	h.flash(r, "success", "Post finalized.")
	http.Redirect(w, r, "/posts", http.StatusSeeOther)
}

// PostDelete removes a saved post and clears the editor if it held it.
func (h *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.backend.DeletePost(ctx, id); err != nil {
		slog.Error("delete post", "post_id", id, "error", err)
		h.record(ctx, "delete", "post", id, "", false)
		h.flash(r, "error", "Deleting the post failed.")
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
		return
	}

	h.ws.RemovePost(id)
	if h.snapshots != nil {
		h.snapshots.Invalidate(ctx, "posts")
	}

	h.record(ctx, "delete", "post", id, "", true)
	h.flash(r, "success", "Post deleted.")
	http.Redirect(w, r, "/posts", http.StatusSeeOther)
}
