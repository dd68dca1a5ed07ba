package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/mcdev12/minigolf/go/internal/httputil"
	"github.com/mcdev12/minigolf/go/internal/rooms"
	"github.com/rs/zerolog/log"
)

var errConnectionClosed = errors.New("connection closed")

// MembershipApp defines what the gateway needs from the rooms application
type MembershipApp interface {
	JoinRoom(ctx context.Context, req rooms.JoinRoomRequest) (*rooms.Membership, error)
}

// Publisher forwards relayed states to other gateway instances
type Publisher interface {
	Publish(room string, frame []byte) error
}

// WebSocketHandler handles WebSocket upgrade requests and the room protocol
type WebSocketHandler struct {
	connectionManager *ConnectionManager
	app               MembershipApp
	publisher         Publisher
	metrics           *Metrics
	joinTimeout       time.Duration
}

// NewWebSocketHandler creates a new WebSocket handler. publisher may be nil.
func NewWebSocketHandler(cm *ConnectionManager, app MembershipApp, publisher Publisher, metrics *Metrics, joinTimeout time.Duration) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
		app:               app,
		publisher:         publisher,
		metrics:           metrics,
		joinTimeout:       joinTimeout,
	}
}

// HandleRoomConnection upgrades GET /api/room
func (h *WebSocketHandler) HandleRoomConnection(w http.ResponseWriter, r *http.Request) {
	// The upgrader has already replied to the client on failure
	if _, err := h.connectionManager.UpgradeConnection(w, r, h); err != nil {
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
	}
}

// HandleConnectionStats returns statistics about active connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.connectionManager.GetConnectionStats())
}

// RegisterRoutes registers WebSocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/room", h.HandleRoomConnection)
	mux.HandleFunc("GET /ws/stats", h.HandleConnectionStats)
}

// HandleMessage dispatches a frame received from c
func (h *WebSocketHandler) HandleMessage(c *Connection, message []byte) {
	var env Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		h.metrics.messagesReceived.WithLabelValues("invalid").Inc()
		h.sendError(c, "invalid message: expected {\"event\", \"data\"}")
		return
	}

	switch env.Event {
	case EventPing:
		h.metrics.messagesReceived.WithLabelValues(string(env.Event)).Inc()
		h.send(c, EventPong, nil)
	case EventJoinRoom:
		h.metrics.messagesReceived.WithLabelValues(string(env.Event)).Inc()
		h.handleJoinRoom(c, env.Data)
	case EventUpdateState:
		h.metrics.messagesReceived.WithLabelValues(string(env.Event)).Inc()
		h.handleUpdateState(c, env.Data)
	default:
		h.metrics.messagesReceived.WithLabelValues("unknown").Inc()
		h.sendError(c, "unknown event "+string(env.Event))
	}
}

// handleJoinRoom records the membership and joins the room's broadcast group concurrently.
// Both are best-effort: failures are logged and the confirmation is sent once both settle.
func (h *WebSocketHandler) handleJoinRoom(c *Connection, data json.RawMessage) {
	payload, err := ParseJoinRoom(data)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}
	room := payload.RoomName

	ctx, cancel := context.WithTimeout(c.Context(), h.joinTimeout)
	defer cancel()

	var (
		wg                sync.WaitGroup
		joinErr, groupErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, joinErr = h.app.JoinRoom(ctx, rooms.JoinRoomRequest{
			RoomName: room,
			Username: payload.Username,
		})
	}()
	go func() {
		defer wg.Done()
		if !h.connectionManager.JoinGroup(c, room, payload.Username) {
			groupErr = errConnectionClosed
		}
	}()
	wg.Wait()

	if err := errors.Join(joinErr, groupErr); err != nil {
		log.Warn().
			Err(err).
			Str("connection_id", c.ID).
			Str("room", room).
			Str("user", payload.Username).
			Msg("join-room partially failed")
	}

	h.send(c, EventJoinedRoom, room)
}

// handleUpdateState relays a state to the sender's room peers
func (h *WebSocketHandler) handleUpdateState(c *Connection, data json.RawMessage) {
	room := h.connectionManager.RoomOf(c)
	if room == "" {
		h.sendError(c, "join a room before sending update-state")
		return
	}
	if _, err := ParseUpdateState(data); err != nil {
		h.sendError(c, err.Error())
		return
	}

	frame, err := json.Marshal(Envelope{Event: EventUpdateState, Data: data})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal update-state")
		return
	}

	h.connectionManager.BroadcastToRoom(room, frame, c)
	h.metrics.statesRelayed.WithLabelValues("local").Inc()

	if h.publisher != nil {
		if err := h.publisher.Publish(room, frame); err != nil {
			log.Warn().Err(err).Str("room", room).Msg("failed to publish state to relay")
		}
	}
}

// DeliverRemote broadcasts a state received from another instance to the local room
func (h *WebSocketHandler) DeliverRemote(room string, frame []byte) {
	h.connectionManager.BroadcastToRoom(room, frame, nil)
	h.metrics.statesRelayed.WithLabelValues("remote").Inc()
}

func (h *WebSocketHandler) send(c *Connection, event EventName, data any) {
	var frame []byte
	var err error
	if data == nil {
		frame, err = json.Marshal(Envelope{Event: event})
	} else {
		frame, err = encodeEnvelope(event, data)
	}
	if err != nil {
		log.Error().Err(err).Str("event", string(event)).Msg("failed to encode frame")
		return
	}
	h.connectionManager.Send(c, frame)
}

func (h *WebSocketHandler) sendError(c *Connection, message string) {
	h.send(c, EventError, ErrorPayload{Message: message})
}
