package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/3issane/PFETRACKCODE212/config"
	"github.com/3issane/PFETRACKCODE212/internal/gateway"
	"github.com/3issane/PFETRACKCODE212/internal/guard"
	"github.com/3issane/PFETRACKCODE212/internal/pfeapi"
	"github.com/3issane/PFETRACKCODE212/internal/ports"
	"github.com/3issane/PFETRACKCODE212/internal/service"
)

// Container holds the wired application components.
type Container struct {
	Config    config.AppConfig
	Store     ports.CredentialStore
	Gateway   *gateway.Client
	API       *pfeapi.API
	Sessions  *service.SessionManager
	Dashboard *service.DashboardService
	Guard     *guard.Guard

	closeStore func() error
}

// ContainerDeps groups dependencies for container construction.
type ContainerDeps struct {
	Config *config.AppConfig
	Logger *slog.Logger
	// HTTPClient overrides the backend transport; nil builds the default client.
	HTTPClient *http.Client
}

// NewContainer wires store → gateway → feature APIs → session manager → guard.
// The session manager is not initialized here; callers decide when to pay for it.
func NewContainer(deps ContainerDeps) (*Container, error) {
	if deps.Config == nil {
		return nil, errors.New("container config is required")
	}
	cfg := *deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store, closeStore, err := NewCredentialStore(StoreOptions{Store: cfg.Store, Redis: cfg.Redis, Logger: logger})
	if err != nil {
		return nil, err
	}

	gw, err := gateway.New(gateway.Options{
		BaseURL:    cfg.API.BaseURL,
		Tokens:     store,
		HTTPClient: deps.HTTPClient,
		Timeout:    cfg.API.Timeout,
		RateLimit:  cfg.API.RateLimit,
		RateBurst:  cfg.API.RateBurst,
		Logger:     logger,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create api gateway: %w", err), closeStore())
	}

	api := pfeapi.New(gw)
	sessions := service.NewSessionManager(service.SessionManagerOptions{
		Store: store,
		API:   api.Auth,
		Config: service.SessionConfig{
			Logger:               logger,
			LogoutOnUnauthorized: cfg.Session.LogoutOnUnauthorized,
		},
	})
	// The manager needs the gateway and the gateway reports to the manager.
	gw.SetObserver(sessions)

	dashboard := service.NewDashboardService(service.DashboardServiceOptions{
		Sources: service.DashboardSources{
			Topics:  api.Topics,
			Reports: api.Reports,
			Grades:  api.Grades,
			Events:  api.Events,
		},
		Sessions: sessions,
		Logger:   logger,
	})

	return &Container{
		Config:     cfg,
		Store:      store,
		Gateway:    gw,
		API:        api,
		Sessions:   sessions,
		Dashboard:  dashboard,
		Guard:      guard.New(guard.Options{Sessions: sessions, LoginPath: cfg.Session.LoginPath}),
		closeStore: closeStore,
	}, nil
}

// Close releases backend connections held by the credential store.
func (c *Container) Close() error {
	if c == nil || c.closeStore == nil {
		return nil
	}
	return c.closeStore()
}
