package cmd

import (
	"fks-execution/config"
	"fks-execution/internal/service"
	"fks-execution/pkg/logger"
	"fks-execution/pkg/middleware"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

type AppDependency struct {
	cfg   *config.Config
	log   *logger.Logger
	echo  *echo.Echo
	state service.AppState
}

func NewAppDependency(cfg *config.Config) (*AppDependency, error) {
	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	return newAppDependency(cfg, log), nil
}

func newAppDependency(cfg *config.Config, log *logger.Logger) *AppDependency {
	return &AppDependency{
		cfg:   cfg,
		log:   log,
		echo:  newEcho(cfg, log),
		state: service.NewAppState(),
	}
}

func newEcho(cfg *config.Config, log *logger.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Recover(log))

	if rl := cfg.API.RateLimit; rl.Enabled {
		log.Info("Rate limiting enabled",
			logger.Field("rate", rl.Rate),
			logger.IntField("burst", rl.Burst),
		)
		e.Use(middleware.NewRateLimiterMiddleware(middleware.RateLimitConfig{
			Rate:      rl.Rate,
			Burst:     rl.Burst,
			ExpiresIn: rl.ExpiresIn,
		}))
	}

	return e
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	// stderr/stdout cannot always be synced, so the error is not interesting.
	_ = d.log.Sync()
	return nil
}
