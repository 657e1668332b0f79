package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/incubadora-iot/core/internal/auth"
	"github.com/incubadora-iot/core/internal/infrastructure/config"
	"github.com/incubadora-iot/core/internal/infrastructure/influxdb"
	"github.com/incubadora-iot/core/internal/infrastructure/logging"
	"github.com/incubadora-iot/core/internal/infrastructure/mqtt"
	"github.com/incubadora-iot/core/internal/record"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight
// requests to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
//
// MQTT and Influx are optional: without MQTT the device must post over
// HTTP or the live channel; without Influx readings simply are not
// mirrored to the telemetry bucket.
type Deps struct {
	Config  config.APIConfig
	WS      config.WebSocketConfig
	MQTTCfg config.MQTTConfig
	Logger  *logging.Logger
	Auth    *auth.Service
	Users   auth.UserRepository
	Records record.Repository
	MQTT    *mqtt.Client
	Influx  *influxdb.Client
	Version string
}

// Server is the HTTP API server for Incubadora Core.
//
// It manages the HTTP listener, routes, middleware, and WebSocket hub.
// Created with New(), started with Start().
type Server struct {
	cfg     config.APIConfig
	wsCfg   config.WebSocketConfig
	mqttCfg config.MQTTConfig
	logger  *logging.Logger
	auth    *auth.Service
	users   auth.UserRepository
	records record.Repository
	mqtt    *mqtt.Client
	influx  *influxdb.Client
	version string
	server  *http.Server
	hub     *Hub
	cancel  context.CancelFunc
}

// New creates an API server with the given dependencies.
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("auth service is required")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if deps.Records == nil {
		return nil, fmt.Errorf("record repository is required")
	}

	return &Server{
		cfg:     deps.Config,
		wsCfg:   deps.WS,
		mqttCfg: deps.MQTTCfg,
		logger:  deps.Logger,
		auth:    deps.Auth,
		users:   deps.Users,
		records: deps.Records,
		mqtt:    deps.MQTT,
		influx:  deps.Influx,
		version: deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// It starts the WebSocket hub, subscribes to the device ingest topic when
// an MQTT client is wired, and launches the HTTP listener in a background
// goroutine. Stop with Close().
func (s *Server) Start(ctx context.Context) error {
	// Internal context so Close() can stop the hub independently of the
	// parent context.
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	s.hub = NewHub(s.wsCfg, s.logger)
	s.hub.createReading = func(ctx context.Context, payload []byte) error {
		_, err := s.createRecord(ctx, payload)
		return err
	}
	go s.hub.Run(srvCtx)

	if err := s.subscribeDeviceIngest(); err != nil {
		s.logger.Warn("failed to subscribe to device ingest topic", "error", err)
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// subscribeDeviceIngest feeds broker-published readings into the shared
// create path, mirroring what a nuevoDato live message does.
func (s *Server) subscribeDeviceIngest() error {
	if s.mqtt == nil {
		return nil
	}

	topic := s.mqttCfg.DataTopic
	s.logger.Info("subscribing to device ingest topic", "topic", topic)

	return s.mqtt.Subscribe(topic, byte(s.mqttCfg.QoS), func(t string, payload []byte) error {
		rec, err := s.createRecord(context.Background(), payload)
		if err != nil {
			return fmt.Errorf("ingest reading from %s: %w", t, err)
		}
		s.logger.Debug("reading ingested from broker", "topic", t, "id", rec.ID)
		return nil
	})
}

// Close gracefully shuts down the API server.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
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

// HealthCheck verifies the API server is running.
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
