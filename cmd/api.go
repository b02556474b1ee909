package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"

	"fks-execution/internal/delivery/http"
	"fks-execution/pkg/logger"
)

type HTTPServer struct {
	appDep   *AppDependency
	handler  *http.HttpAPIHandler
	listener net.Listener
}

func NewHTTPServer(appDep *AppDependency, handler *http.HttpAPIHandler) *HTTPServer {
	return &HTTPServer{
		appDep:  appDep,
		handler: handler,
	}
}

// ParseListenAddr accepts an IP literal with a port, e.g. 0.0.0.0:4700 or [::1]:4700.
func ParseListenAddr(listen string) (netip.AddrPort, error) {
	addr, err := netip.ParseAddrPort(listen)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("invalid listen address %q: %w", listen, err)
	}
	return addr, nil
}

// Listen parses the configured address and binds it.
func (s *HTTPServer) Listen() error {
	log := s.appDep.log

	addr, err := ParseListenAddr(s.appDep.cfg.API.Listen)
	if err != nil {
		log.Error("addr_parse_failed", logger.ErrorField(err))
		return err
	}

	log.Info("binding_listener", logger.StringField("addr", addr.String()))
	l, err := net.Listen("tcp", addr.String())
	if err != nil {
		log.Error("bind_failed", logger.ErrorField(err))
		return fmt.Errorf("bind %s: %w", addr, err)
	}

	s.listener = l
	log.Info("listener_bound", logger.StringField("addr", l.Addr().String()))
	return nil
}

// Addr is the bound address, nil before Listen.
func (s *HTTPServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Start serves on the bound listener until the server is stopped. It returns
// http.ErrServerClosed after Stop.
func (s *HTTPServer) Start() error {
	if s.listener == nil {
		return fmt.Errorf("http server: Listen must be called before Start")
	}

	s.SetupRoutes()
	s.appDep.echo.Listener = s.listener

	s.appDep.log.Info("Starting HTTP server", logger.StringField("addr", s.listener.Addr().String()))
	return s.appDep.echo.Start("")
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	log := s.appDep.log
	log.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(ctx, s.appDep.cfg.API.ShutdownTimeout)
	defer cancel()

	stopDone := make(chan error, 1)
	go func() {
		stopDone <- s.appDep.echo.Shutdown(ctx)
	}()

	select {
	case err := <-stopDone:
		// Shutdown gives up on the deadline without dropping the connections still open.
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn("Timeout while stopping HTTP server, forcing shutdown")
			return s.appDep.echo.Close()
		}
		if err != nil {
			log.Error("Error when stopping HTTP server", logger.ErrorField(err))
			return err
		}
		log.Info("HTTP server stopped successfully")
	case <-ctx.Done():
		log.Warn("Timeout while stopping HTTP server, forcing shutdown")
		return s.appDep.echo.Close()
	}
	return nil
}

func (s *HTTPServer) closeListener() {
	if s.listener != nil {
		_ = s.listener.Close()
	}
}

func (s *HTTPServer) SetupRoutes() {
	s.handler.SetupRoutes()
}
