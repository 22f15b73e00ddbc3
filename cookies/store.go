// Package cookies owns the two HttpOnly session cookies that carry the
// access and refresh credentials between the browser and this server. No
// other package reads or writes them.
package cookies

import (
	"net/http"
)

// Cookie lifetimes, fixed policy: the access credential is short-lived, the
// refresh credential long-lived.
const (
	AccessMaxAge  = 900    // 15 minutes
	RefreshMaxAge = 604800 // 7 days
)

// Store reads and writes the session cookie pair with a uniform security
// profile: HttpOnly, SameSite=Strict, Path=/, Secure in production only.
type Store struct {
	accessName  string
	refreshName string
	secure      bool
}

func New(accessName, refreshName string, secure bool) *Store {
	return &Store{
		accessName:  accessName,
		refreshName: refreshName,
		secure:      secure,
	}
}

// SetSession writes both session cookies. The access and refresh credentials
// are always set as a pair; callers must never set one without the other.
func (s *Store) SetSession(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(w, s.sessionCookie(s.accessName, access, AccessMaxAge))
	http.SetCookie(w, s.sessionCookie(s.refreshName, refresh, RefreshMaxAge))
}

// ClearSession expires both session cookies immediately, whether or not they
// currently exist. Idempotent.
func (s *Store) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, s.sessionCookie(s.accessName, "", -1))
	http.SetCookie(w, s.sessionCookie(s.refreshName, "", -1))
}

// Get looks up a cookie value by name.
func (s *Store) Get(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Access returns the access credential carried by the request, if any.
func (s *Store) Access(r *http.Request) (string, bool) {
	return s.Get(r, s.accessName)
}

// Refresh returns the refresh credential carried by the request, if any.
func (s *Store) Refresh(r *http.Request) (string, bool) {
	return s.Get(r, s.refreshName)
}

// HasAccess reports whether the access cookie is present. This is an
// existence check only, never a validity check: presence means a credential
// was issued and not yet locally cleared, not that the backend still accepts
// it.
func (s *Store) HasAccess(r *http.Request) bool {
	_, ok := s.Access(r)
	return ok
}

func (s *Store) sessionCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	}
}
