package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"cancerdetect/internal/config"
	"cancerdetect/internal/detection"
	"cancerdetect/internal/logger"
	"cancerdetect/internal/plugin"
	"cancerdetect/internal/plugin/drivers"
	"cancerdetect/internal/repository"
	"cancerdetect/internal/repository/sqlite"
	"cancerdetect/internal/routes"
	"cancerdetect/internal/services/websocket"
	"cancerdetect/internal/session"
)

const shutdownTimeout = 10 * time.Second

// Core holds the components shared by every shell.
type Core struct {
	Config     *config.Config
	Logger     *logger.Logger
	Registry   *plugin.Registry
	Dispatcher *detection.Dispatcher
	// History is nil unless HISTORY_DB is set.
	History repository.DetectionRepository

	db *sqlite.DB
}

// NewCore builds the registry, the dispatcher and the optional history store.
// defaultPolicy applies when PLUGIN_DIR_POLICY is not set.
func NewCore(cfg *config.Config, log *logger.Logger, defaultPolicy plugin.Policy) (*Core, error) {
	policy, err := plugin.ParsePolicy(cfg.PluginPolicy, defaultPolicy)
	if err != nil {
		return nil, err
	}

	c := &Core{
		Config:     cfg,
		Logger:     log,
		Registry:   plugin.NewRegistry(cfg.PluginDirectory, cfg.PluginSuffix, policy, log),
		Dispatcher: detection.NewDispatcher(plugin.NewLoader(cfg.PluginDirectory, cfg.PluginSuffix, drivers.Builtin()), log),
	}

	if cfg.HistoryDatabase != "" {
		db, err := sqlite.New(cfg.HistoryDatabase)
		if err != nil {
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		c.db = db
		c.History = sqlite.NewDetectionRepository(db)
		log.Info("Detection history enabled: %s", cfg.HistoryDatabase)
	}
	return c, nil
}

// Close releases the history database.
func (c *Core) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// App is the web shell.
type App struct {
	*Core
	sessions   *session.Store
	hubService *websocket.HubService
}

func NewApp(core *Core) *App {
	return &App{
		Core:       core,
		sessions:   session.NewStore(session.ImageFirst, core.Config.SessionTTL, core.Logger),
		hubService: websocket.NewHubService(core.Logger),
	}
}

// Handler returns the web shell's HTTP handler.
func (a *App) Handler() http.Handler {
	return routes.SetupRoutes(&routes.Services{
		Registry: a.Registry,
		Detector: a.Dispatcher,
		Sessions: a.sessions,
		Hub:      a.hubService,
		History:  a.History,
	}, a.Config, a.Logger)
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Config.Port),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	// Start background services
	g.Go(func() error { return a.hubService.Run(ctx) })
	g.Go(func() error { return a.sessions.Run(ctx) })

	g.Go(func() error {
		a.Logger.Info("Cancer detection dashboard on http://localhost:%d", a.Config.Port)
		a.Logger.Info("Plugins: %s (*%s, %s)", a.Registry.Dir(), a.Registry.Suffix(), a.Registry.Policy())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.Logger.Info("Shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
