// Package api provides the HTTP REST API and WebSocket server for Hearth Core.
//
// It exposes device registry operations, the voice assistant lifecycle, and a
// real-time event feed to user interfaces (web dashboard, mobile apps).
//
// The server follows the same lifecycle pattern as other infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hearthd/hearth-core/internal/device"
	"github.com/hearthd/hearth-core/internal/infrastructure/config"
	"github.com/hearthd/hearth-core/internal/infrastructure/influxdb"
	"github.com/hearthd/hearth-core/internal/infrastructure/logging"
	"github.com/hearthd/hearth-core/internal/infrastructure/mqtt"
	"github.com/hearthd/hearth-core/internal/voice"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config    config.APIConfig
	WS        config.WebSocketConfig
	Logger    *logging.Logger
	Registry  *device.Registry
	Assistant *voice.Assistant
	Events    *voice.EventLog
	MQTT      *mqtt.Client     // optional: device state publications
	Influx    *influxdb.Client // optional: device state telemetry
	Hub       *Hub             // optional: externally-created hub for shared broadcast
	Version   string
}

// Server is the HTTP API server for Hearth Core.
//
// It manages the HTTP listener, routes, middleware, and WebSocket hub.
// The server is created with New() and started with Start().
type Server struct {
	cfg         config.APIConfig
	wsCfg       config.WebSocketConfig
	logger      *logging.Logger
	registry    *device.Registry
	assistant   *voice.Assistant
	events      *voice.EventLog
	mqtt        *mqtt.Client
	influx      *influxdb.Client
	version     string
	server      *http.Server
	hub         *Hub
	externalHub bool
	ctx         context.Context    // server lifetime, parents the voice session
	cancel      context.CancelFunc // cancels background goroutines on Close()
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Registry == nil {
		return nil, fmt.Errorf("device registry is required")
	}
	if deps.Assistant == nil {
		return nil, fmt.Errorf("voice assistant is required")
	}
	if deps.Events == nil {
		return nil, fmt.Errorf("event log is required")
	}
	// MQTT and InfluxDB are optional; the API works fully in-memory without them

	s := &Server{
		cfg:       deps.Config,
		wsCfg:     deps.WS,
		logger:    deps.Logger,
		registry:  deps.Registry,
		assistant: deps.Assistant,
		events:    deps.Events,
		mqtt:      deps.MQTT,
		influx:    deps.Influx,
		version:   deps.Version,
	}

	if deps.Hub != nil {
		s.hub = deps.Hub
		s.externalHub = true
	}

	return s, nil
}

// Hub returns the server's WebSocket hub. It is available after Start().
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start begins listening for HTTP connections.
//
// It sets up the router, starts the WebSocket hub, and launches the HTTP
// listener in a background goroutine. The server can be stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	// Internal context so Close() can stop background goroutines and the
	// voice session independently of the parent context.
	s.ctx, s.cancel = context.WithCancel(ctx)

	if s.hub == nil {
		s.hub = NewHub(s.wsCfg, s.logger)
		go s.hub.Run(s.ctx)
	}

	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr)
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It stops the voice assistant if it is still running, waits up to 10
// seconds for in-flight requests to complete, then forcefully closes
// remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.assistant.Running() {
		if err := s.assistant.Stop(); err != nil {
			s.logger.Warn("stopping voice assistant during shutdown", "error", err)
		}
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running and responsive.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
