package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"cancerdetect/internal/config"
)

// AuthCookie is the cookie set by the login handler.
const AuthCookie = "authenticated"

// AuthToken is the cookie value proving the password was entered.
func AuthToken(password string) string {
	sum := sha256.Sum256([]byte("cancerdetect:" + password))
	return hex.EncodeToString(sum[:])
}

// AuthMiddleware checks that the user is logged in. Without a configured password it lets everything through.
func AuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg.Password == "" {
			return next
		}
		token := AuthToken(cfg.Password)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The login page and static assets need no authentication
			if r.URL.Path == "/login" ||
				r.URL.Path == "/auth/login" ||
				strings.HasPrefix(r.URL.Path, "/static/") {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(AuthCookie)
			if err != nil || subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(token)) != 1 {
				// API requests get 401, pages redirect to the login form
				if strings.HasPrefix(r.URL.Path, "/api/") ||
					r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
