package middleware

import (
	"net/http"

	"github.com/lvargas/dulceria/internal/auth"
)

// AdminSessionCookie is the cookie holding the admin session token.
const AdminSessionCookie = "dulceria_admin"

// RequireAdmin rejects requests without a valid admin session cookie.
// Catalog write routes sit behind this gate; reads are public.
func RequireAdmin(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AdminSessionCookie)
			if err != nil || !sessions.Valid(cookie.Value) {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
