package cookies_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ezzedini-Yassine/frontdbforet/cookies"
	"github.com/stretchr/testify/require"
)

func newStore() *cookies.Store {
	return cookies.New("accessToken", "refreshToken", false)
}

func cookieByName(t *testing.T, set []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range set {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestSetSessionWritesThePair(t *testing.T) {
	store := newStore()
	rec := httptest.NewRecorder()

	store.SetSession(rec, "acc-1", "ref-1")

	set := rec.Result().Cookies()
	require.Len(t, set, 2)

	access := cookieByName(t, set, "accessToken")
	require.Equal(t, "acc-1", access.Value)
	require.Equal(t, cookies.AccessMaxAge, access.MaxAge)

	refresh := cookieByName(t, set, "refreshToken")
	require.Equal(t, "ref-1", refresh.Value)
	require.Equal(t, cookies.RefreshMaxAge, refresh.MaxAge)
}

func TestSessionCookieSecurityProfile(t *testing.T) {
	store := newStore()
	rec := httptest.NewRecorder()

	store.SetSession(rec, "acc-1", "ref-1")

	for _, c := range rec.Result().Cookies() {
		require.True(t, c.HttpOnly, "%s must be HttpOnly", c.Name)
		require.Equal(t, "/", c.Path)
		require.Equal(t, http.SameSiteStrictMode, c.SameSite)
		require.False(t, c.Secure, "Secure is off outside production")
	}
}

func TestSessionCookiesAreSecureInProduction(t *testing.T) {
	store := cookies.New("accessToken", "refreshToken", true)
	rec := httptest.NewRecorder()

	store.SetSession(rec, "acc-1", "ref-1")

	for _, c := range rec.Result().Cookies() {
		require.True(t, c.Secure)
	}
}

func TestClearSessionExpiresBothCookies(t *testing.T) {
	store := newStore()
	rec := httptest.NewRecorder()

	store.ClearSession(rec)

	set := rec.Result().Cookies()
	require.Len(t, set, 2)
	for _, c := range set {
		require.Empty(t, c.Value)
		require.Negative(t, c.MaxAge)
	}
}

func TestClearSessionIsIdempotent(t *testing.T) {
	store := newStore()
	rec := httptest.NewRecorder()

	store.ClearSession(rec)
	store.ClearSession(rec)

	require.Len(t, rec.Result().Cookies(), 4)
}

func TestAccessAndRefreshReadTheRequestCookies(t *testing.T) {
	store := newStore()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "accessToken", Value: "acc-1"})
	r.AddCookie(&http.Cookie{Name: "refreshToken", Value: "ref-1"})

	access, ok := store.Access(r)
	require.True(t, ok)
	require.Equal(t, "acc-1", access)

	refresh, ok := store.Refresh(r)
	require.True(t, ok)
	require.Equal(t, "ref-1", refresh)
}

func TestHasAccessIsPresenceOnly(t *testing.T) {
	store := newStore()

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	require.False(t, store.HasAccess(bare))

	empty := httptest.NewRequest(http.MethodGet, "/", nil)
	empty.AddCookie(&http.Cookie{Name: "accessToken", Value: ""})
	require.False(t, store.HasAccess(empty))

	// Any non-empty value counts, including one the backend would reject.
	stale := httptest.NewRequest(http.MethodGet, "/", nil)
	stale.AddCookie(&http.Cookie{Name: "accessToken", Value: "long-expired"})
	require.True(t, store.HasAccess(stale))
}
