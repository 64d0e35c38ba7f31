package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/datalabs-io/platform-api/config"
	"github.com/datalabs-io/platform-api/internal/data"
	"github.com/datalabs-io/platform-api/internal/observability/statsd"
	"github.com/datalabs-io/platform-api/internal/ports"
	"github.com/datalabs-io/platform-api/internal/service"
	"github.com/datalabs-io/platform-api/internal/store"
	pgstore "github.com/datalabs-io/platform-api/internal/store/postgres"
	redisstore "github.com/datalabs-io/platform-api/internal/store/redis"
)

// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
const shutdownWaitTimeout = 15 * time.Second

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth       *service.AuthService
	Authorizer *service.Authorizer
	Teams      *service.TeamService
	Tools      *service.ToolService
	// Reaper is built only for the Postgres store backend.
	Reaper *service.ReaperService
	// Users is exposed for development seeding.
	Users *data.UserRepo
	// Metrics is nil when metric emission is disabled.
	Metrics *statsd.Client
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the keyed store backend, repositories, and services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	keyed, reaper, err := buildKeyedStore(deps)
	if err != nil {
		return ServiceContainer{}, err
	}

	metricsSink := buildMetricsSink(cfg.Observability, logger)

	users := data.NewUserRepo(keyed)
	sessions := data.NewSessionRepo(keyed)
	teams := data.NewTeamRepo(keyed)
	tools := data.NewToolRepo(keyed)

	issuer, err := service.NewIssuer(service.IssuerOptions{
		Sessions: sessions,
		Config:   cfg.Auth,
		Time:     &data.RealTimeProvider{},
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build issuer: %w", err)
	}

	authSvc, err := service.NewAuthService(service.AuthServiceOptions{
		Users:    users,
		Sessions: sessions,
		Issuer:   issuer,
		Logger:   logger,
		Metrics:  sinkOrNil(metricsSink),
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build auth service: %w", err)
	}

	authorizer, err := service.NewAuthorizer(service.AuthorizerOptions{
		Users:    users,
		Sessions: sessions,
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build authorizer: %w", err)
	}

	teamSvc, err := service.NewTeamService(service.TeamServiceOptions{
		Teams: teams,
		Users: users,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build team service: %w", err)
	}

	toolSvc, err := service.NewToolService(service.ToolServiceOptions{
		Tools: tools,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build tool service: %w", err)
	}

	container := ServiceContainer{
		Auth:       authSvc,
		Authorizer: authorizer,
		Teams:      teamSvc,
		Tools:      toolSvc,
		Users:      users,
		Metrics:    metricsSink,
	}

	if reaper != nil && cfg.IsReaperEnabled() {
		reaperSvc, reaperErr := service.NewReaperService(service.ReaperServiceOptions{
			Reaper:  reaper,
			Config:  cfg.Reaper,
			Logger:  logger,
			Metrics: sinkOrNil(metricsSink),
		})
		if reaperErr != nil {
			return ServiceContainer{}, fmt.Errorf("build reaper service: %w", reaperErr)
		}
		container.Reaper = reaperSvc
	}

	return container, nil
}

// buildKeyedStore selects the store implementation for the configured
// backend. The Postgres store doubles as the expiry reaper; Redis expires
// items natively so no reaper is returned for it.
func buildKeyedStore(deps *ServiceDeps) (store.Store, ports.ExpiryReaper, error) {
	cfg := deps.Config
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		if deps.DB == nil {
			return nil, nil, errors.New("postgres store backend requires a database connection")
		}
		pg := pgstore.New(deps.DB, cfg.Store.Table)
		return pg, pg, nil
	case config.StoreBackendRedis:
		if deps.RedisClient == nil {
			return nil, nil, errors.New("redis store backend requires a redis connection")
		}
		return redisstore.New(deps.RedisClient, cfg.Store.Table), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func buildMetricsSink(cfg config.ObservabilityConfig, logger *slog.Logger) *statsd.Client {
	if !cfg.Metrics.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.Metrics.StatsdAddress,
		Prefix:  "platform",
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}

// sinkOrNil avoids handing a typed-nil *statsd.Client to an interface field.
func sinkOrNil(client *statsd.Client) statsd.Sink {
	if client == nil {
		return nil
	}
	return client
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts all enabled services and manages their
// lifecycle. It blocks until a shutdown signal is received or a service
// fails; on either, every service is stopped before returning.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabled, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if enabled[config.ServiceModeHTTP] {
		server := NewHTTPServer(&HTTPServerConfig{
			Config:   cfg.Config,
			Services: cfg.Services,
			Logger:   logger,
		})

		g.Go(func() error {
			logger.Info("starting HTTP server", "addr", server.Addr)
			if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", serveErr)
			}
			return nil
		})

		g.Go(func() error {
			<-ctx.Done()
			return ShutdownHTTPServer(server, logger)
		})
	}

	if enabled[config.ServiceModeReaper] {
		if cfg.Services.Reaper == nil {
			return errors.New("reaper service enabled but not built")
		}
		g.Go(func() error {
			logger.Info("starting reaper service")
			return cfg.Services.Reaper.Run(ctx)
		})
	}

	err = g.Wait()
	if cfg.Services.Metrics != nil {
		if closeErr := cfg.Services.Metrics.Close(); closeErr != nil {
			logger.Warn("close metrics sink failed", "error", closeErr)
		}
	}
	return err
}
