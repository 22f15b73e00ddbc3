package server

import (
	"net/http"
	"net/url"

	apperrors "github.com/Ezzedini-Yassine/frontdbforet/internal/errors"
	"github.com/Ezzedini-Yassine/frontdbforet/session"
)

// LoginSubmissionHandler processes the login form submission (POST /auth/login)
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")
		callback := sanitizeCallback(r.FormValue(CallbackParam))

		err := s.sessions.SignIn(r.Context(), w, session.Credentials{
			Email:    email,
			Password: password,
		})
		if err != nil {
			s.redirectAuthError(w, r, RouteLogin, authErrorMessage(err, "Invalid email or password"), email, "")
			return
		}

		target := RouteDashboard
		if callback != "" {
			target = callback
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// SignupSubmissionHandler processes the signup form submission (POST /auth/signup)
func (s *Server) SignupSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		username := r.FormValue("username")
		password := r.FormValue("password")

		err := s.sessions.SignUp(r.Context(), w, session.Registration{
			Email:    email,
			Username: username,
			Password: password,
		})
		if err != nil {
			s.redirectAuthError(w, r, RouteSignup, authErrorMessage(err, "Could not create account"), email, username)
			return
		}

		http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
	}
}

// LogoutHandler tears the session down and returns to the login page. The
// session store guarantees local teardown whatever the backend does, so this
// handler has no failure branch.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.sessions.Logout(r.Context(), w, r)
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}

// authErrorMessage shows validation problems verbatim and hides everything
// else behind a generic message.
func authErrorMessage(err error, generic string) string {
	if apperrors.Is(err, apperrors.ErrValidation) {
		return err.Error()
	}
	return generic
}

// redirectAuthError sends the user back to an auth page with the error and
// the submitted fields preserved.
func (s *Server) redirectAuthError(w http.ResponseWriter, r *http.Request, page, errorMsg, email, username string) {
	redirectURL := page + "?error=" + url.QueryEscape(errorMsg)
	if email != "" {
		redirectURL += "&email=" + url.QueryEscape(email)
	}
	if username != "" {
		redirectURL += "&username=" + url.QueryEscape(username)
	}
	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}
