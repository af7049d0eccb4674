package handlers

import (
	"crypto/subtle"
	"net/http"

	"cancerdetect/internal/config"
	"cancerdetect/internal/logger"
	"cancerdetect/internal/middleware"
)

// LoginHandler checks the form password against PASSWORD and sets the auth cookie.
func LoginHandler(cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		if cfg.Password == "" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		password := r.FormValue("password")
		if subtle.ConstantTimeCompare([]byte(password), []byte(cfg.Password)) != 1 {
			logger.Warning("Failed login attempt from %s", r.RemoteAddr)
			http.Error(w, "Invalid password", http.StatusUnauthorized)
			return
		}
		// Set the cookie after a successful login
		http.SetCookie(w, &http.Cookie{
			Name:  middleware.AuthCookie,
			Value: middleware.AuthToken(cfg.Password),
			Path:  "/",
			// Secure: true, // uncomment when serving over HTTPS
			HttpOnly: true,
		})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
