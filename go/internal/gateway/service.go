package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Relay connects the gateway to other instances
type Relay interface {
	Publisher
	Subscribe(deliver func(room string, frame []byte)) error
	Close() error
}

// Service is the room gateway: WebSocket connections, room groups and state relay
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	relay             Relay
}

// Config holds configuration for the room gateway service
type Config struct {
	ConnectionConfig ConnectionConfig
	JoinTimeout      time.Duration
}

// DefaultConfig returns default configuration for the room gateway
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		JoinTimeout:      5 * time.Second,
	}
}

// NewService creates a new room gateway service. relay may be nil for a single instance.
func NewService(config Config, app MembershipApp, relay Relay, metrics *Metrics) *Service {
	connectionManager := NewConnectionManager(config.ConnectionConfig, metrics)

	wsHandler := NewWebSocketHandler(connectionManager, app, relay, metrics, config.JoinTimeout)

	return &Service{
		connectionManager: connectionManager,
		wsHandler:         wsHandler,
		relay:             relay,
	}
}

// Start runs the gateway until ctx is canceled
func (s *Service) Start(ctx context.Context) error {
	log.Info().Bool("relay", s.relay != nil).Msg("starting room gateway service")

	if s.relay != nil {
		if err := s.relay.Subscribe(s.wsHandler.DeliverRemote); err != nil {
			return err
		}
	}

	s.connectionManager.Start(ctx)

	log.Info().Msg("room gateway service shutting down")
	return s.Stop()
}

// Stop closes the relay
func (s *Service) Stop() error {
	if s.relay != nil {
		if err := s.relay.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close relay")
			return err
		}
	}
	log.Info().Msg("room gateway service stopped")
	return nil
}

// RegisterRoutes registers the WebSocket HTTP routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	log.Info().Msg("room gateway routes registered")
}

// GetStats returns statistics about the gateway service
func (s *Service) GetStats() ConnectionStats {
	return s.connectionManager.GetConnectionStats()
}
