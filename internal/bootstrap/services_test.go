package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillhub/skills-dashboard/config"
	"github.com/skillhub/skills-dashboard/internal/adapters/memstore"
	"github.com/skillhub/skills-dashboard/internal/service"
)

func testConfig() *config.AppConfig {
	cfg := &config.AppConfig{
		API: config.APIConfig{BaseURL: "https://skills.example.com/api"},
		Storage: config.StorageConfig{
			Backend:       config.StorageBackendMemory,
			TTL:           time.Hour,
			PurgeInterval: time.Minute,
		},
	}
	cfg.Sanitize()
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildStorage(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.StorageConfig
		infra       *Infrastructure
		wantJanitor bool
		wantErr     string
	}{
		{
			name:        "memory with ttl sweeps",
			cfg:         config.StorageConfig{Backend: config.StorageBackendMemory, TTL: time.Hour, PurgeInterval: time.Minute},
			wantJanitor: true,
		},
		{
			name: "memory without ttl keeps records",
			cfg:  config.StorageConfig{Backend: config.StorageBackendMemory, PurgeInterval: time.Minute},
		},
		{
			name:    "postgres needs a database",
			cfg:     config.StorageConfig{Backend: config.StorageBackendPostgres, TTL: time.Hour, PurgeInterval: time.Minute},
			infra:   &Infrastructure{},
			wantErr: "database connection",
		},
		{
			name:    "redis needs a client",
			cfg:     config.StorageConfig{Backend: config.StorageBackendRedis, TTL: time.Hour},
			wantErr: "redis connection",
		},
		{
			name:    "unknown backend",
			cfg:     config.StorageConfig{Backend: "etcd"},
			wantErr: "unsupported storage backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, janitor, err := buildStorage(tt.cfg, tt.infra, service.JanitorHooks{Logger: discardLogger()})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, &memstore.Storage{}, provider)
			assert.Equal(t, tt.wantJanitor, janitor != nil)
		})
	}
}

func TestNewServices(t *testing.T) {
	cfg := testConfig()

	services, err := NewServices(context.Background(), &ServiceDeps{Config: cfg, Logger: discardLogger()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = services.Close() })

	assert.NotNil(t, services.Storage)
	assert.NotNil(t, services.Janitor)
	assert.NotNil(t, services.Backend)
	assert.Nil(t, services.Session.Verifier)
	assert.Equal(t, "/login", services.Guard.LoginTarget())
	assert.Equal(t, "/dashboard", services.Guard.DashboardTarget())
}

func TestNewServices_TokenVerification(t *testing.T) {
	cfg := testConfig()
	cfg.Token = config.TokenConfig{JWKSURL: "https://issuer.example.com/jwks.json", Issuer: "https://issuer.example.com"}

	services, err := NewServices(context.Background(), &ServiceDeps{Config: cfg, Logger: discardLogger()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = services.Close() })

	assert.NotNil(t, services.Session.Verifier)
}

func TestNewServices_RejectsRelativeBaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.API.BaseURL = "skills.example.com"

	_, err := NewServices(context.Background(), &ServiceDeps{Config: cfg, Logger: discardLogger()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend client")
}

func TestNewServices_RequiresConfig(t *testing.T) {
	_, err := NewServices(context.Background(), nil)
	require.Error(t, err)
}

func TestInfrastructure_NilSafe(t *testing.T) {
	var infra *Infrastructure
	require.NoError(t, infra.Close())
	assert.Empty(t, infra.HealthChecks())
	assert.Empty(t, (&Infrastructure{}).HealthChecks())
}

func TestRunServicesWithShutdown_StopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.Addr = "127.0.0.1:0"

	services, err := NewServices(context.Background(), &ServiceDeps{Config: cfg, Logger: discardLogger()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunServicesWithShutdown(ctx, &ServiceOrchestrationConfig{
			Config:   cfg,
			Services: services,
			Logger:   discardLogger(),
		})
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("services did not stop")
	}
}

func TestLaunchBackground_ReportsFailure(t *testing.T) {
	errCh := make(chan error, 1)
	h := launchBackground(context.Background(), discardLogger(), errCh, backgroundService{
		name:  "sweeper",
		start: func(context.Context) error { return errors.New("boom") },
	})

	<-h.done
	err := <-errCh
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sweeper failed")
}

func TestStorageSummary(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Backend = config.StorageBackendPostgres

	attrs := StorageSummary(cfg)
	assert.Contains(t, attrs, "postgres")
	assert.Contains(t, attrs, "db_name")
	assert.Nil(t, StorageSummary(nil))
}
