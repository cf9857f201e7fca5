package middleware

import (
	"context"
	"net/http"

	"postdesk/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"
)

// LoadSession retrieves the session from Valkey and stores it in the
// request context. A request without a session gets a fresh anonymous one
// so flashes and the portal's client selection have somewhere to live.
// Downstream handlers access it via SessionFromCtx().
func LoadSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r.Context(), r)
			if err != nil {
				// Valkey trouble: serve the request without a session.
				next.ServeHTTP(w, r)
				return
			}

			if data == nil {
				data = &session.Data{}
				id, err := store.Create(r.Context(), w, data)
				if err != nil {
					next.ServeHTTP(w, r)
					return
				}
				// Make the new session visible to this request too, not
				// just the next one.
				r.AddCookie(&http.Cookie{Name: session.CookieName, Value: id})
			}

			ctx := context.WithValue(r.Context(), SessionKey, data)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if no session is loaded.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}
