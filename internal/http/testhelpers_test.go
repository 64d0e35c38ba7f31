package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/datalabs-io/platform-api/config"
	"github.com/datalabs-io/platform-api/internal/data"
	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	"github.com/datalabs-io/platform-api/internal/service"
	"github.com/datalabs-io/platform-api/internal/store"
	"github.com/datalabs-io/platform-api/internal/testutil"
)

// routerFixture wires the full router over the in-memory store so tests can
// drive the real login flow end to end.
type routerFixture struct {
	clock    *data.FixedTimeProvider
	mem      *store.Memory
	users    *data.UserRepo
	sessions *data.SessionRepo
	handler  http.Handler
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	clock := data.NewFixedTimeProvider(testutil.TestTime())
	mem := store.NewMemory()
	mem.NowFunc = clock.Now

	users := data.NewUserRepo(mem)
	sessions := data.NewSessionRepo(mem)
	teams := data.NewTeamRepo(mem)
	tools := data.NewToolRepo(mem)

	authCfg := config.AuthConfig{}
	authCfg.Sanitize()

	issuer, err := service.NewIssuer(service.IssuerOptions{
		Sessions: sessions,
		Config:   authCfg,
		Time:     clock,
	})
	require.NoError(t, err)

	authSvc, err := service.NewAuthService(service.AuthServiceOptions{
		Users:    users,
		Sessions: sessions,
		Issuer:   issuer,
	})
	require.NoError(t, err)

	authorizer, err := service.NewAuthorizer(service.AuthorizerOptions{
		Users:    users,
		Sessions: sessions,
	})
	require.NoError(t, err)

	teamSvc, err := service.NewTeamService(service.TeamServiceOptions{
		Teams: teams,
		Users: users,
	})
	require.NoError(t, err)

	toolSvc, err := service.NewToolService(service.ToolServiceOptions{
		Tools: tools,
	})
	require.NoError(t, err)

	handler := NewRouter(RouterServices{
		Auth:       authSvc,
		Authorizer: authorizer,
		Teams:      teamSvc,
		Tools:      toolSvc,
	})

	return &routerFixture{clock: clock, mem: mem, users: users, sessions: sessions, handler: handler}
}

func (f *routerFixture) seedUser(t *testing.T, u domainauth.User) {
	t.Helper()
	require.NoError(t, f.users.Put(context.Background(), u))
}

func (f *routerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

// loginCodeFor reads the latest outstanding login code straight from the
// store, standing in for the out-of-band delivery channel.
func (f *routerFixture) loginCodeFor(t *testing.T, userID string) string {
	t.Helper()
	outstanding, err := f.sessions.AuthSessionsForUser(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, outstanding)
	return outstanding[len(outstanding)-1].Code
}

// authenticate drives the full two-phase flow over HTTP and returns the
// session and CSRF cookies.
func (f *routerFixture) authenticate(t *testing.T, email, userID string) (session, csrf *http.Cookie) {
	t.Helper()

	rec := f.do(httptest.NewRequest(http.MethodPost, "/auth?type=login&email="+email, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	code := f.loginCodeFor(t, userID)
	rec = f.do(httptest.NewRequest(http.MethodPost, "/auth?type=authenticate&email="+email+"&code="+code, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case SessionCookieName:
			session = c
		case CSRFCookieName:
			csrf = c
		}
	}
	require.NotNil(t, session)
	require.NotNil(t, csrf)
	return session, csrf
}

// authServiceFor builds a standalone auth service over the fixture's store,
// for tests that exercise a handler outside the router.
func authServiceFor(t *testing.T, f *routerFixture) *service.AuthService {
	t.Helper()

	authCfg := config.AuthConfig{}
	authCfg.Sanitize()

	issuer, err := service.NewIssuer(service.IssuerOptions{
		Sessions: f.sessions,
		Config:   authCfg,
		Time:     f.clock,
	})
	require.NoError(t, err)

	svc, err := service.NewAuthService(service.AuthServiceOptions{
		Users:    f.users,
		Sessions: f.sessions,
		Issuer:   issuer,
	})
	require.NoError(t, err)
	return svc
}

func testActiveUser() domainauth.User {
	return domainauth.User{ID: "u1", Email: "a@x.com", Role: domainauth.RoleUser, Status: domainauth.StatusActive}
}

func testSuperAdmin() domainauth.User {
	return domainauth.User{ID: "admin", Email: "admin@x.com", Role: domainauth.RoleSuperAdmin, Status: domainauth.StatusActive}
}
