package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/datalabs-io/platform-api/config"
	"github.com/datalabs-io/platform-api/internal/devseed"
	httpx "github.com/datalabs-io/platform-api/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// NewHTTPServer builds the HTTP server around the router. The caller owns
// the server lifecycle (ListenAndServe / Shutdown).
func NewHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	routerServices := httpx.RouterServices{
		Auth:         cfg.Services.Auth,
		Authorizer:   cfg.Services.Authorizer,
		Teams:        cfg.Services.Teams,
		Tools:        cfg.Services.Tools,
		CookieDomain: appCfg.Auth.CookieDomain,
		Logger:       logger,
	}
	if appCfg.IsDev {
		// Dev mode logs issued codes; production delivery happens out of band.
		routerServices.Delivery = devseed.LogDelivery{Logger: logger}
	}
	handler := httpx.NewRouter(routerServices)

	addr := appCfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("HTTP server stopped")
	return nil
}
