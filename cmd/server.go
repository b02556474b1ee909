package cmd

import (
	"context"
	"errors"
	"fmt"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fks-execution/config"
	"fks-execution/internal/delivery/http"
	"fks-execution/internal/service"
	"fks-execution/pkg/logger"
	"fks-execution/pkg/utils"

	"github.com/spf13/cobra"
)

var errServerPanicked = errors.New("http server panicked")

// Controller drives the serve loop: it binds, serves, waits for whichever of the server
// ending or a shutdown signal comes first, and then parks the process in the idle loop
// unless exit on shutdown is configured.
type Controller struct {
	log            *logger.Logger
	server         *HTTPServer
	exitOnShutdown bool
	idleInterval   time.Duration
}

func NewController(appDep *AppDependency, server *HTTPServer) *Controller {
	return &Controller{
		log:            appDep.log,
		server:         server,
		exitOnShutdown: appDep.cfg.API.ExitOnShutdown,
		idleInterval:   appDep.cfg.API.IdleInterval,
	}
}

// Run returns early only on startup failures or when exit on shutdown is set. Otherwise it
// idles until ctx is done, which for the real process is never.
func (c *Controller) Run(ctx context.Context, shutdown <-chan struct{}) error {
	if err := c.server.Listen(); err != nil {
		return err
	}

	serveDone := make(chan error, 1)
	go func() {
		err := errServerPanicked
		defer func() { serveDone <- err }()
		defer utils.LogPanic(c.log, "http server", false)
		err = c.server.Start()
	}()
	c.log.Info("server_future_created")

	var serveErr error
	select {
	case err := <-serveDone:
		if err != nil && !errors.Is(err, httpNet.ErrServerClosed) {
			c.log.Error("server_terminated_error", logger.ErrorField(err))
			serveErr = err
		}
		c.log.Warn("server_future_completed_unexpectedly")
		if serveErr == nil {
			serveErr = errors.New("http server stopped unexpectedly")
		}
	case <-shutdown:
		c.log.Info("shutdown signal received")
		c.stopServer(serveDone)
	case <-ctx.Done():
		c.stopServer(serveDone)
		return ctx.Err()
	}

	if c.exitOnShutdown {
		if serveErr != nil {
			return fmt.Errorf("http server: %w", serveErr)
		}
		c.log.Info("exit_on_shutdown set, exiting")
		return nil
	}

	c.idle(ctx)
	return nil
}

func (c *Controller) stopServer(serveDone <-chan error) {
	if err := c.server.Stop(context.Background()); err != nil {
		c.log.Error("Failed to stop HTTP server", logger.ErrorField(err))
	}
	if err := <-serveDone; err != nil && !errors.Is(err, httpNet.ErrServerClosed) {
		c.log.Error("server_terminated_error", logger.ErrorField(err))
	}
	// Serve never takes ownership of the listener when shutdown wins the race with it.
	c.server.closeListener()
}

// idle keeps the process resident for inspection after the server is gone.
func (c *Controller) idle(ctx context.Context) {
	c.log.Warn("execution_main_exiting_loop_enter", logger.DurationField("interval", c.idleInterval))

	ticker := time.NewTicker(c.idleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.log.Debug("idle")
		}
	}
}

func Start(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	appDep, err := NewAppDependency(cfg)
	if err != nil {
		return fmt.Errorf("create app dependency: %w", err)
	}
	defer appDep.Close()
	defer utils.LogPanic(appDep.log, "main", true)

	appDep.log.Info("startup_begin", logger.StringField("version", cmd.Root().Version))
	appDep.log.Info("parsed_cli",
		logger.StringField("listen", cfg.API.Listen),
		logger.Field("exit_on_shutdown", cfg.API.ExitOnShutdown),
	)

	return serve(context.Background(), appDep)
}

// serve runs the controller with SIGINT and SIGTERM as the shutdown trigger. Signals stay
// captured until serve returns, so a second one during the idle loop is absorbed.
func serve(ctx context.Context, appDep *AppDependency) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	services := service.NewService(appDep.log, appDep.state)
	httpHandler := http.NewHttpAPIHandler(appDep.echo, appDep.log, services)
	apiServer := NewHTTPServer(appDep, httpHandler)

	return NewController(appDep, apiServer).Run(ctx, sigCtx.Done())
}
