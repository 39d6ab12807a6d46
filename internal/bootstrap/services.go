package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillhub/skills-dashboard/config"
	"github.com/skillhub/skills-dashboard/internal/adapters/backend"
	"github.com/skillhub/skills-dashboard/internal/adapters/memstore"
	"github.com/skillhub/skills-dashboard/internal/adapters/oidc"
	redisstore "github.com/skillhub/skills-dashboard/internal/adapters/redis"
	"github.com/skillhub/skills-dashboard/internal/data"
	domainauth "github.com/skillhub/skills-dashboard/internal/domain/auth"
	"github.com/skillhub/skills-dashboard/internal/observability/statsd"
	"github.com/skillhub/skills-dashboard/internal/ports"
	"github.com/skillhub/skills-dashboard/internal/service"
)

// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
const shutdownWaitTimeout = 15 * time.Second

// ServiceContainer holds the wired components of the dashboard.
type ServiceContainer struct {
	Storage ports.ClientStorageProvider
	Janitor *service.StorageJanitor // nil when the backend expires records itself
	Backend *backend.Client
	Guard   domainauth.RouteGuard
	Session service.SessionHooks
	Metrics *statsd.Client
}

// Close releases resources owned by the container.
func (c ServiceContainer) Close() error {
	if c.Metrics == nil {
		return nil
	}
	return c.Metrics.Close()
}

// ServiceDeps contains the inputs needed to build the services.
type ServiceDeps struct {
	Config *config.AppConfig
	Infra  *Infrastructure
	Logger *slog.Logger
}

// NewServices wires storage, token verification, metrics and the backend client.
func NewServices(ctx context.Context, deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service config is required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metricsClient, err := buildMetrics(cfg, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	verifier, err := buildVerifier(ctx, cfg.Token)
	if err != nil {
		return ServiceContainer{}, errors.Join(err, metricsClient.Close())
	}
	if verifier != nil {
		logger.InfoContext(ctx, "access token verification enabled", "jwks_url", cfg.Token.JWKSURL)
	}

	storage, janitor, err := buildStorage(cfg.Storage, deps.Infra, service.JanitorHooks{
		Logger:  logger,
		Metrics: metricsClient,
		Backend: string(cfg.Storage.Backend),
	})
	if err != nil {
		return ServiceContainer{}, errors.Join(err, metricsClient.Close())
	}

	client, err := backend.New(backend.Config{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		Headers:        cfg.API.Headers(),
		LoginTokenPath: cfg.API.LoginTokenPath,
		LoginUserPath:  cfg.API.LoginUserPath,
		Metrics:        metricsClient,
		Logger:         logger,
	})
	if err != nil {
		return ServiceContainer{}, errors.Join(fmt.Errorf("create backend client: %w", err), metricsClient.Close())
	}

	return ServiceContainer{
		Storage: storage,
		Janitor: janitor,
		Backend: client,
		Guard: domainauth.NewRouteGuard(
			domainauth.GuardMode(cfg.Guard.Mode),
			cfg.Guard.ProtectedPrefixes,
			cfg.Guard.PublicPaths,
		),
		Session: service.SessionHooks{
			Verifier: verifier,
			Logger:   logger,
			Metrics:  metricsClient,
		},
		Metrics: metricsClient,
	}, nil
}

func buildMetrics(cfg *config.AppConfig, logger *slog.Logger) (*statsd.Client, error) {
	env := "production"
	if cfg.IsDev {
		env = "development"
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled:    cfg.Observability.Metrics.IsEnabled(),
		Address:    cfg.Observability.Metrics.StatsdAddress,
		Prefix:     cfg.Observability.Metrics.Prefix,
		Logger:     logger,
		GlobalTags: map[string]string{"env": env},
	})
	if err != nil {
		return nil, fmt.Errorf("create statsd client: %w", err)
	}
	return client, nil
}

//nolint:ireturn // a nil verifier disables verification in the session service.
func buildVerifier(ctx context.Context, cfg config.TokenConfig) (ports.TokenVerifier, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	v, err := oidc.NewVerifier(ctx, oidc.VerifierConfig{
		JWKSURL:  cfg.JWKSURL,
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
	})
	if err != nil {
		return nil, fmt.Errorf("create token verifier: %w", err)
	}
	return v, nil
}

//nolint:ireturn // the provider is chosen at runtime.
func buildStorage(
	cfg config.StorageConfig,
	infra *Infrastructure,
	hooks service.JanitorHooks,
) (ports.ClientStorageProvider, *service.StorageJanitor, error) {
	var (
		provider ports.ClientStorageProvider
		purger   service.ExpiredRecordPurger
	)

	switch cfg.Backend {
	case config.StorageBackendRedis:
		if infra == nil || infra.Redis == nil {
			return nil, nil, errors.New("redis storage requires a redis connection")
		}
		// Keys carry their own TTL; no janitor needed.
		return redisstore.NewStorage(infra.Redis, redisstore.StorageOptions{Prefix: cfg.KeyPrefix, TTL: cfg.TTL}), nil, nil
	case config.StorageBackendPostgres:
		if infra == nil || infra.DB == nil {
			return nil, nil, errors.New("postgres storage requires a database connection")
		}
		repo := data.NewClientStorageRepo(infra.DB, cfg.TTL)
		provider, purger = repo, repo
	case config.StorageBackendMemory, "":
		store := memstore.New(cfg.TTL)
		provider, purger = store, store
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}

	if cfg.TTL <= 0 {
		return provider, nil, nil
	}
	janitor, err := service.NewStorageJanitor(service.StorageJanitorOptions{
		Purger:   purger,
		Interval: cfg.PurgeInterval,
		Hooks:    hooks,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create storage janitor: %w", err)
	}
	return provider, janitor, nil
}

// ServiceOrchestrationConfig contains the dependencies for running the dashboard.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Infra    *Infrastructure
	Logger   *slog.Logger
}

// backgroundService describes a startable background component.
type backgroundService struct {
	name  string
	start func(context.Context) error
}

// backgroundServiceHandle tracks a running background service.
type backgroundServiceHandle struct {
	name string
	done <-chan struct{}
}

func launchBackground(ctx context.Context, logger *slog.Logger, errCh chan<- error, svc backgroundService) backgroundServiceHandle {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := svc.start(ctx); err != nil {
			errMsg := fmt.Errorf("%s failed: %w", svc.name, err)
			select {
			case errCh <- errMsg:
			case <-ctx.Done():
			default:
				logger.WarnContext(ctx, "dropping background service error", "service", svc.name, "error", errMsg)
			}
		}
	}()
	logger.InfoContext(ctx, "background service started", "service", svc.name)
	return backgroundServiceHandle{name: svc.name, done: done}
}

func buildBackgroundServices(services ServiceContainer) []backgroundService {
	var out []backgroundService
	if services.Janitor != nil {
		out = append(out, backgroundService{name: "storage janitor", start: services.Janitor.Run})
	}
	return out
}

// RunServicesWithShutdown starts the HTTP server and background services and
// blocks until ctx is cancelled, a shutdown signal arrives or a service fails.
func RunServicesWithShutdown(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	serviceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	background := buildBackgroundServices(cfg.Services)
	errCh := make(chan error, len(background)+1)

	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Health:   cfg.Infra.HealthChecks(),
		Logger:   logger,
	}, errCh)

	handles := make([]backgroundServiceHandle, 0, len(background))
	for _, svc := range background {
		handles = append(handles, launchBackground(serviceCtx, logger, errCh, svc))
	}

	return waitForShutdown(shutdownConfig{
		ctx:         serviceCtx,
		cancel:      cancel,
		errCh:       errCh,
		httpServer:  server,
		logger:      logger,
		backgrounds: handles,
	})
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx         context.Context
	cancel      context.CancelFunc
	errCh       <-chan error
	httpServer  *http.Server
	logger      *slog.Logger
	backgrounds []backgroundServiceHandle
}

// waitForShutdown waits for shutdown signal or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel()
		return gracefulStop(cfg)
	case <-cfg.ctx.Done():
		cfg.logger.Info("context cancelled, shutting down services...")
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel()
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop attempts to gracefully stop all services.
func gracefulStop(cfg shutdownConfig) error {
	if cfg.httpServer != nil {
		// The service context is already cancelled; shutdown gets its own deadline.
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(cfg.ctx), shutdownWaitTimeout)
		defer cancel()

		if err := ShutdownHTTPServer(ShutdownConfig{
			Context: shutdownCtx,
			Server:  cfg.httpServer,
			Logger:  cfg.logger,
		}); err != nil {
			return err
		}
	}

	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}

	return nil
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
