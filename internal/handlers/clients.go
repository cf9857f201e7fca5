package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"postdesk/internal/forms"
)

// ClientsList shows every client profile.
func (h *Admin) ClientsList(w http.ResponseWriter, r *http.Request) {
	clients, err := h.refreshClients(r.Context())
	if err != nil {
		slog.Warn("load clients", "error", err)
		h.flash(r, "error", "Could not reach the backend; showing last known data.")
	}

	h.renderer.Page(w, r, "clients", h.pageData(r, "Clients", "clients", map[string]any{
		"Clients": clients,
	}))
}

// ClientNew shows the onboarding form.
func (h *Admin) ClientNew(w http.ResponseWriter, r *http.Request) {
	h.renderer.Page(w, r, "client_form", h.pageData(r, "New client", "clients", map[string]any{
		"Form": forms.ClientForm{},
	}))
}

// ClientCreate submits the onboarding form to the backend. The flat form
// is nested into the create payload; only the client name is mandatory.
// Failure re-renders the form with every submitted value intact.
func (h *Admin) ClientCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form := forms.ParseClientForm(r.PostForm)
	payload, err := form.Payload()
	if err != nil {
		h.flash(r, "error", "Client name is required.")
		h.renderer.Page(w, r, "client_form", h.pageData(r, "New client", "clients", map[string]any{
			"Form": form,
		}))
		return
	}

	id, err := h.backend.CreateClient(ctx, payload)
	if err != nil {
		slog.Error("create client", "error", err)
		h.record(ctx, "create", "client", "", payload.ClientName, false)
		h.flash(r, "error", "Creating the client failed.")
		h.renderer.Page(w, r, "client_form", h.pageData(r, "New client", "clients", map[string]any{
			"Form": form,
		}))
		return
	}

	h.record(ctx, "create", "client", id, payload.ClientName, true)
	if h.snapshots != nil {
		h.snapshots.Invalidate(ctx, "clients")
	}
	h.flash(r, "success", "Client created.")
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

// ClientConfirmDelete interposes an explicit confirmation page before the
// irreversible cascade delete.
func (h *Admin) ClientConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	client, ok := h.ws.Clients.Find(id)
	if !ok {
		// Stale page; refresh and retry the lookup once.
		h.refreshClients(r.Context())
		if client, ok = h.ws.Clients.Find(id); !ok {
			h.flash(r, "error", "Client not found.")
			http.Redirect(w, r, "/clients", http.StatusSeeOther)
			return
		}
	}

	h.renderer.Page(w, r, "client_confirm_delete", h.pageData(r, "Delete client", "clients", map[string]any{
		"Client": client,
	}))
}

// ClientDelete performs the confirmed cascade delete and drops the client
// from local state.
func (h *Admin) ClientDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.backend.DeleteClient(ctx, id); err != nil {
		slog.Error("delete client", "client_id", id, "error", err)
		h.record(ctx, "delete", "client", id, "", false)
		h.flash(r, "error", "Deleting the client failed.")
		http.Redirect(w, r, "/clients", http.StatusSeeOther)
		return
	}

	h.ws.Clients.Remove(id)
	// The cascade also removed the client's posts.
	for _, p := range h.ws.Posts.Items() {
		if p.ClientID == id {
			h.ws.RemovePost(p.ID)
		}
	}
	if h.snapshots != nil {
		h.snapshots.Invalidate(ctx, "clients")
		h.snapshots.Invalidate(ctx, "posts")
	}

	h.record(ctx, "delete", "client", id, "", true)
	h.flash(r, "success", "Client and all of its data deleted.")
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}
