package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adminRequest builds an authenticated, CSRF-carrying request for the admin.
func adminRequest(method, target, body string, session, csrf *http.Cookie) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(session)
	req.AddCookie(csrf)
	req.Header.Set(CSRFHeaderName, csrf.Value)
	return req
}

func TestTeamEndpoints(t *testing.T) {
	f := newRouterFixture(t)
	f.seedUser(t, testSuperAdmin())
	f.seedUser(t, testActiveUser())
	session, csrf := f.authenticate(t, "admin@x.com", "admin")

	rec := f.do(adminRequest(http.MethodPost, "/teams", `{"name":"core"}`, session, csrf))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(adminRequest(http.MethodPost, "/teams/members?team_name=core",
		`{"email":"a@x.com","member_type":"Maintain"}`, session, csrf))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":"u1"`)

	// The member sees the team on their profile.
	userSession, _ := f.authenticate(t, "a@x.com", "u1")
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(userSession)
	rec = f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"team_name":"core"`)
}

func TestTeamEndpoints_Refusals(t *testing.T) {
	t.Run("plain user is forbidden", func(t *testing.T) {
		f := newRouterFixture(t)
		f.seedUser(t, testActiveUser())
		session, csrf := f.authenticate(t, "a@x.com", "u1")

		rec := f.do(adminRequest(http.MethodPost, "/teams", `{"name":"core"}`, session, csrf))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing CSRF header is forbidden", func(t *testing.T) {
		f := newRouterFixture(t)
		f.seedUser(t, testSuperAdmin())
		session, csrf := f.authenticate(t, "admin@x.com", "admin")

		req := httptest.NewRequest(http.MethodPost, "/teams", strings.NewReader(`{"name":"core"}`))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(session)
		req.AddCookie(csrf)
		rec := f.do(req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no session is unauthorized", func(t *testing.T) {
		f := newRouterFixture(t)
		rec := f.do(httptest.NewRequest(http.MethodPost, "/teams", strings.NewReader(`{"name":"core"}`)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("blank team name is a validation error", func(t *testing.T) {
		f := newRouterFixture(t)
		f.seedUser(t, testSuperAdmin())
		session, csrf := f.authenticate(t, "admin@x.com", "admin")

		rec := f.do(adminRequest(http.MethodPost, "/teams", `{"name":"  "}`, session, csrf))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown member email is not found", func(t *testing.T) {
		f := newRouterFixture(t)
		f.seedUser(t, testSuperAdmin())
		session, csrf := f.authenticate(t, "admin@x.com", "admin")

		rec := f.do(adminRequest(http.MethodPost, "/teams", `{"name":"core"}`, session, csrf))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = f.do(adminRequest(http.MethodPost, "/teams/members?team_name=core",
			`{"email":"ghost@x.com","member_type":"User"}`, session, csrf))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing team_name param", func(t *testing.T) {
		f := newRouterFixture(t)
		f.seedUser(t, testSuperAdmin())
		session, csrf := f.authenticate(t, "admin@x.com", "admin")

		rec := f.do(adminRequest(http.MethodPost, "/teams/members",
			`{"email":"a@x.com","member_type":"User"}`, session, csrf))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
