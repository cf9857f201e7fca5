// Package router sets up all HTTP routes and middleware chains for the
// console. Console pages and the client portal share one middleware stack;
// only the views differ.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"postdesk/internal/handlers"
	"postdesk/internal/middleware"
	"postdesk/internal/session"
	"postdesk/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no CSRF.
	r.Get("/health", admin.Health)

	// Embedded static assets.
	r.Handle("/static/*", http.FileServer(http.FS(web.StaticFS)))

	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Generation hits the backend's image pipeline, so mutations get
		// a forgiving per-IP budget rather than a strict one.
		limiter := middleware.NewRateLimiter(60, time.Minute)
		r.Use(limiter.Middleware)

		// Console.
		r.Get("/", admin.Dashboard)

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", admin.ClientsList)
			r.Get("/new", admin.ClientNew)
			r.Post("/", admin.ClientCreate)
			r.Post("/{id}/confirm-delete", admin.ClientConfirmDelete)
			r.Post("/{id}/delete", admin.ClientDelete)
		})

		r.Post("/categories", admin.CategoryCreate)

		r.Route("/topics", func(r chi.Router) {
			r.Get("/", admin.TopicsPage)
			r.Post("/", admin.TopicCreate)
			r.Post("/{id}/delete", admin.TopicDelete)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", admin.PostsPage)
			r.Post("/generate", admin.PostGenerate)
			r.Post("/regenerate", admin.PostRegenerate)
			r.Post("/{id}/caption", admin.PostCaption)
			r.Post("/{id}/finalize", admin.PostFinalize)
			r.Post("/{id}/delete", admin.PostDelete)
		})

		r.Get("/calendar", admin.Calendar)

		// Client portal.
		r.Route("/portal", func(r chi.Router) {
			r.Get("/", admin.PortalLogin)
			r.Post("/login", admin.PortalLoginSubmit)
			r.Get("/posts", admin.PortalPosts)
		})
	})

	return r
}
