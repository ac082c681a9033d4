package app

import (
	"github.com/bobmcallan/linweb-api/internal/common"
	"github.com/bobmcallan/linweb-api/internal/config"
	"github.com/bobmcallan/linweb-api/internal/handlers"
	"github.com/bobmcallan/linweb-api/internal/supabase"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Supabase *supabase.Client

	// HTTP handlers
	ValueHandler    *handlers.ValueHandler
	APIValueHandler *handlers.APIValueHandler
	UserInfoHandler *handlers.UserInfoHandler
	VersionHandler  *handlers.VersionHandler
	HealthHandler   *handlers.HealthHandler
}

// New initializes the application with all dependencies. The Supabase client
// is constructed once here and injected into every handler; nothing holds
// process-wide mutable state.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	a.Supabase = supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey, cfg.Supabase.GetTimeout())

	a.initHandlers()

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.ValueHandler = handlers.NewValueHandler(a.Logger, a.Supabase, a.Supabase)
	a.APIValueHandler = handlers.NewAPIValueHandler(a.Logger, a.Supabase, a.Supabase)
	a.UserInfoHandler = handlers.NewUserInfoHandler(a.Logger, a.Supabase, a.Supabase)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger, a.Supabase)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
