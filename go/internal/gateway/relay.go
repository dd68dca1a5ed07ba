package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// roomStateWildcard matches the state subject of every room
const roomStateWildcard = "rooms.*.state"

// RelayConfig holds configuration for the cross-instance NATS relay
type RelayConfig struct {
	URL           string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultRelayConfig returns default relay configuration
func DefaultRelayConfig() RelayConfig {
	return RelayConfig{
		URL:           nats.DefaultURL,
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
	}
}

// NATSRelay forwards relayed room states between gateway instances over core NATS.
// Delivery is fire-and-forget; an instance ignores the states it published itself.
type NATSRelay struct {
	nc         *nats.Conn
	sub        *nats.Subscription
	instanceID string
}

// relayMessage is the NATS payload carrying one update-state frame
type relayMessage struct {
	Origin string          `json:"origin"`
	Room   string          `json:"room"`
	Frame  json.RawMessage `json:"frame"`
}

// NewNATSRelay connects to NATS
func NewNATSRelay(config RelayConfig) (*NATSRelay, error) {
	opts := []nats.Option{
		nats.Name("minigolf-gateway"),
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &NATSRelay{
		nc:         nc,
		instanceID: uuid.New().String(),
	}, nil
}

// Publish sends a room's state frame to the other instances
func (r *NATSRelay) Publish(room string, frame []byte) error {
	data, err := json.Marshal(relayMessage{
		Origin: r.instanceID,
		Room:   room,
		Frame:  frame,
	})
	if err != nil {
		return fmt.Errorf("marshal relay message: %w", err)
	}
	if err := r.nc.Publish(roomSubject(room), data); err != nil {
		return fmt.Errorf("publish room state: %w", err)
	}
	return nil
}

// Subscribe delivers states published by other instances to deliver
func (r *NATSRelay) Subscribe(deliver func(room string, frame []byte)) error {
	sub, err := r.nc.Subscribe(roomStateWildcard, relayHandler(r.instanceID, deliver))
	if err != nil {
		return fmt.Errorf("subscribe to room states: %w", err)
	}
	r.sub = sub

	log.Info().
		Str("subject", roomStateWildcard).
		Str("instance_id", r.instanceID).
		Msg("NATS relay subscribed")
	return nil
}

// Close unsubscribes and drains the connection
func (r *NATSRelay) Close() error {
	if r.sub != nil {
		if err := r.sub.Unsubscribe(); err != nil {
			log.Warn().Err(err).Msg("failed to unsubscribe NATS relay")
		}
	}
	return r.nc.Drain()
}

func relayHandler(instanceID string, deliver func(room string, frame []byte)) nats.MsgHandler {
	return func(msg *nats.Msg) {
		var m relayMessage
		if err := json.Unmarshal(msg.Data, &m); err != nil {
			log.Warn().Err(err).Str("subject", msg.Subject).Msg("dropping malformed relay message")
			return
		}
		if m.Origin == instanceID {
			return
		}
		deliver(m.Room, m.Frame)
	}
}

// roomSubject maps a room name onto a single NATS subject token
func roomSubject(room string) string {
	token := strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		}
		return r
	}, room)
	return "rooms." + token + ".state"
}
