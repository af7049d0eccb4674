package handlers

import (
	"net/http"

	"cancerdetect/internal/middleware"
)

// LogoutHandler clears the authentication cookie and redirects to the login page.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:   middleware.AuthCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1, //Deleting cookie
	})

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
