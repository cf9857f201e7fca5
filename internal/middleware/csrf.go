package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

const (
	// CSRFCookieName is the cookie that holds the CSRF token.
	CSRFCookieName = "pd_csrf"

	// CSRFHeaderName is the header the token may be sent in.
	CSRFHeaderName = "X-CSRF-Token"

	// CSRFFormField is the hidden form field the page templates render.
	CSRFFormField = "csrf_token"

	// csrfTokenBytes is the random token length (32 bytes = 64 hex chars).
	csrfTokenBytes = 32
)

// CSRF implements double-submit cookie protection. GET, HEAD, and OPTIONS
// pass through after the token cookie is ensured; every other method must
// echo the cookie's token in the form field or header.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := ensureCSRFCookie(w, r)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		submitted := r.Header.Get(CSRFHeaderName)
		if submitted == "" {
			submitted = r.FormValue(CSRFFormField)
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
			http.Error(w, "CSRF token mismatch", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ensureCSRFCookie returns the request's token, minting one when absent.
// A minted token is added to the in-flight request too, so the first
// rendered page already carries a working hidden field.
func ensureCSRFCookie(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(CSRFCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	raw := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true behind TLS
		SameSite: http.SameSiteStrictMode,
	})
	r.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
	return token, nil
}

// GetCSRFToken reads the current token off the request cookie. The
// renderer uses it to populate the hidden form fields.
func GetCSRFToken(r *http.Request) string {
	cookie, err := r.Cookie(CSRFCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
