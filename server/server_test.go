package server_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Ezzedini-Yassine/frontdbforet/gateway"
	"github.com/Ezzedini-Yassine/frontdbforet/gateway/gatewayfake"
	"github.com/Ezzedini-Yassine/frontdbforet/internal/config"
	"github.com/Ezzedini-Yassine/frontdbforet/server"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*server.Server, *gatewayfake.FakeGateway) {
	t.Helper()
	fake := gatewayfake.NewFakeGateway()
	return server.New(config.New(), fake), fake
}

func getPage(srv *server.Server, path string, signedIn bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if signedIn {
		r.AddCookie(&http.Cookie{Name: "accessToken", Value: "some-access"})
		r.AddCookie(&http.Cookie{Name: "refreshToken", Value: "some-refresh"})
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, r)
	return rec
}

func postForm(srv *server.Server, path string, form url.Values, withCookies bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if withCookies {
		r.AddCookie(&http.Cookie{Name: "accessToken", Value: "some-access"})
		r.AddCookie(&http.Cookie{Name: "refreshToken", Value: "some-refresh"})
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, r)
	return rec
}

func TestRouteGateDecisionsAreDeterminedByCookiePresence(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		signedIn     bool
		wantStatus   int
		wantLocation string
	}{
		{"login page, signed out", "/login", false, http.StatusOK, ""},
		{"signup page, signed out", "/signup", false, http.StatusOK, ""},
		{"login page, signed in", "/login", true, http.StatusSeeOther, "/dashboard"},
		{"signup page, signed in", "/signup", true, http.StatusSeeOther, "/dashboard"},
		{"dashboard, signed in", "/dashboard", true, http.StatusOK, ""},
		{"dashboard, signed out", "/dashboard", false, http.StatusSeeOther, "/login?callbackUrl=%2Fdashboard"},
		{"index, signed in", "/", true, http.StatusSeeOther, "/dashboard"},
		{"index, signed out", "/", false, http.StatusSeeOther, "/login?callbackUrl=%2F"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, fake := newTestServer(t)

			rec := getPage(srv, tc.path, tc.signedIn)
			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantLocation != "" {
				require.Equal(t, tc.wantLocation, rec.Header().Get("Location"))
			}
			require.Equal(t, 0, fake.RenewCalls(), "the gate never contacts the backend")
			require.Equal(t, 0, fake.DoCalls())
		})
	}
}

func TestGateAdmitsPresentButExpiredCredential(t *testing.T) {
	// Validity is decided by the backend on the first authorized call, not at
	// the gate.
	srv, _ := newTestServer(t)

	rec := getPage(srv, "/dashboard", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestLoginSubmissionSignsInAndFollowsCallback(t *testing.T) {
	srv, fake := newTestServer(t)

	rec := postForm(srv, "/auth/login", url.Values{
		"email":       {"a@b.com"},
		"password":    {"Abc12345"},
		"callbackUrl": {"/dashboard"},
	}, false)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get("Location"))
	require.Equal(t, 1, fake.AuthenticateCalls())

	set := rec.Result().Cookies()
	require.Len(t, set, 2)
}

func TestLoginSubmissionRejectsOffsiteCallback(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postForm(srv, "/auth/login", url.Values{
		"email":       {"a@b.com"},
		"password":    {"Abc12345"},
		"callbackUrl": {"//evil.example.com/phish"},
	}, false)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestLoginFailureRedirectsBackWithGenericErrorAndEmail(t *testing.T) {
	srv, fake := newTestServer(t)
	fake.AuthenticateFn = func(string, string) (gateway.TokenPair, error) {
		return gateway.TokenPair{}, gatewayfake.Unauthorized()
	}

	rec := postForm(srv, "/auth/login", url.Values{
		"email":    {"a@b.com"},
		"password": {"wrong-password"},
	}, false)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/login", location.Path)
	require.Equal(t, "Invalid email or password", location.Query().Get("error"))
	require.Equal(t, "a@b.com", location.Query().Get("email"))
	require.Empty(t, rec.Result().Cookies())
}

func TestLoginValidationErrorIsShownVerbatim(t *testing.T) {
	srv, fake := newTestServer(t)

	rec := postForm(srv, "/auth/login", url.Values{
		"email":    {"not-an-email"},
		"password": {"Abc12345"},
	}, false)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/login", location.Path)
	require.NotEqual(t, "Invalid email or password", location.Query().Get("error"))
	require.NotEmpty(t, location.Query().Get("error"))
	require.Equal(t, 0, fake.AuthenticateCalls())
}

func TestSignupSubmissionCreatesAccountAndSignsIn(t *testing.T) {
	srv, fake := newTestServer(t)

	rec := postForm(srv, "/auth/signup", url.Values{
		"email":    {"a@b.com"},
		"username": {"ab"},
		"password": {"Abc12345"},
	}, false)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get("Location"))
	require.Equal(t, 1, fake.RegisterCalls())
	require.Len(t, rec.Result().Cookies(), 2)
}

func TestSignupFailureRedirectsBackWithFieldsPreserved(t *testing.T) {
	srv, fake := newTestServer(t)
	fake.RegisterFn = func(string, string, string) (gateway.TokenPair, error) {
		return gateway.TokenPair{}, gatewayfake.Down()
	}

	rec := postForm(srv, "/auth/signup", url.Values{
		"email":    {"a@b.com"},
		"username": {"ab"},
		"password": {"Abc12345"},
	}, false)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/signup", location.Path)
	require.Equal(t, "Could not create account", location.Query().Get("error"))
	require.Equal(t, "a@b.com", location.Query().Get("email"))
	require.Equal(t, "ab", location.Query().Get("username"))
}

func TestLogoutClearsCookiesEvenWhenTheBackendIsDown(t *testing.T) {
	srv, fake := newTestServer(t)
	fake.InvalidateFn = func(string) error {
		return gatewayfake.Down()
	}

	rec := postForm(srv, "/auth/logout", url.Values{}, true)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
	require.Equal(t, 1, fake.InvalidateCalls())

	set := rec.Result().Cookies()
	require.Len(t, set, 2)
	for _, c := range set {
		require.Negative(t, c.MaxAge)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := getPage(srv, "/healthz", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpointIsExposed(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := getPage(srv, "/metrics", false)
	require.Equal(t, http.StatusOK, rec.Code)
}
