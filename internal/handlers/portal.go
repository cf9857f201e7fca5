package handlers

import (
	"log/slog"
	"net/http"

	"postdesk/internal/middleware"
	"postdesk/internal/models"
)

// PortalLogin shows the business picker. There is no password: the portal
// trusts whoever holds the link, and the selection only scopes which posts
// are shown.
func (h *Admin) PortalLogin(w http.ResponseWriter, r *http.Request) {
	clients, err := h.refreshClients(r.Context())
	if err != nil {
		slog.Warn("portal load clients", "error", err)
	}

	h.renderer.Page(w, r, "portal_login", h.pageData(r, "Client portal", "", map[string]any{
		"Clients": clients,
	}))
}

// PortalLoginSubmit stores the picked client in the session. The value is
// stored as submitted; an empty pick simply shows an empty portal.
func (h *Admin) PortalLoginSubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/portal", http.StatusSeeOther)
		return
	}

	sess.SelectedClientID = r.FormValue("client_id")
	if err := h.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("portal session update", "error", err)
		h.flash(r, "error", "Could not save your selection.")
		http.Redirect(w, r, "/portal", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/portal/posts", http.StatusSeeOther)
}

// PortalPosts shows the selected client's posts, finalized and drafts
// alike, without any editing controls.
func (h *Admin) PortalPosts(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil || sess.SelectedClientID == "" {
		http.Redirect(w, r, "/portal", http.StatusSeeOther)
		return
	}

	posts, err := h.refreshPosts(r.Context())
	if err != nil {
		slog.Warn("portal load posts", "error", err)
	}

	mine := []models.Post{}
	for _, p := range posts {
		if p.ClientID == sess.SelectedClientID {
			mine = append(mine, p)
		}
	}

	clientName := sess.SelectedClientID
	if client, ok := h.ws.Clients.Find(sess.SelectedClientID); ok {
		clientName = client.Name
	} else if clients, _ := h.refreshClients(r.Context()); len(clients) > 0 {
		if client, ok := h.ws.Clients.Find(sess.SelectedClientID); ok {
			clientName = client.Name
		}
	}

	h.renderer.Page(w, r, "portal_posts", h.pageData(r, "Your posts", "", map[string]any{
		"ClientName": clientName,
		"Posts":      mine,
	}))
}
