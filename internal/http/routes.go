package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	"github.com/datalabs-io/platform-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth       AuthServiceInterface
	Authorizer Authorizer
	Teams      *service.TeamService
	Tools      *service.ToolService
	// Optional: out-of-band delivery channel for login codes.
	Delivery     CodeDelivery
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		Delivery:     services.Delivery,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	profileHandlers := &ProfileHandlers{Teams: services.Teams, Logger: logger}
	teamHandlers := &TeamHandlers{Svc: services.Teams}
	toolHandlers := &ToolHandlers{Svc: services.Tools}

	requireAuth := RequireAuth(services.Authorizer)
	requireSuperAdmin := RequireRole(services.Authorizer, domainauth.RoleSuperAdmin)
	csrf := CSRFProtection()

	// The login flow itself carries no session, so it sits outside the
	// auth and CSRF chains.
	mux.Handle("POST /auth", http.HandlerFunc(authHandlers.Auth))

	mux.Handle("GET /profile", requireAuth(http.HandlerFunc(profileHandlers.Profile)))

	mux.Handle("POST /teams", chain(http.HandlerFunc(teamHandlers.CreateTeam), requireSuperAdmin, csrf))
	mux.Handle("POST /teams/members", chain(http.HandlerFunc(teamHandlers.AddMember), requireSuperAdmin, csrf))

	mux.Handle("POST /tools", chain(http.HandlerFunc(toolHandlers.CreateTool), requireAuth, csrf))
	mux.Handle("GET /tools/{id}", requireAuth(http.HandlerFunc(toolHandlers.GetTool)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return Recover(logger)(Logging(logger)(mux))
}

// chain wraps a handler in middleware, outermost first.
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
