package gateway

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ConnectionManager manages WebSocket connections and their room broadcast groups
type ConnectionManager struct {
	// All open connections, and the subset that joined each room
	connections map[*Connection]bool
	rooms       map[string]map[*Connection]bool
	mu          sync.RWMutex

	upgrader websocket.Upgrader
	config   ConnectionConfig
	metrics  *Metrics

	broadcastCh chan BroadcastMessage
}

// Connection represents a WebSocket connection to a client
type Connection struct {
	ID          string
	Conn        *websocket.Conn
	Send        chan []byte
	Manager     *ConnectionManager
	ConnectedAt time.Time

	ctx     context.Context
	cancel  context.CancelFunc
	handler MessageHandler

	// guarded by Manager.mu
	room     string
	username string
	closed   bool
}

// MessageHandler processes frames read from a connection
type MessageHandler interface {
	HandleMessage(c *Connection, message []byte)
}

// ConnectionConfig holds configuration for WebSocket connections
type ConnectionConfig struct {
	WriteTimeout        time.Duration
	ReadTimeout         time.Duration
	PingInterval        time.Duration
	MaxMessageSize      int64
	ReadBufferSize      int
	WriteBufferSize     int
	SendBufferSize      int
	BroadcastBufferSize int
	CheckOrigin         func(r *http.Request) bool
}

// BroadcastMessage is a frame to deliver to every connection of a room except Exclude
type BroadcastMessage struct {
	Room    string
	Frame   []byte
	Exclude *Connection
}

// ConnectionStats summarises the open connections
type ConnectionStats struct {
	TotalConnections int            `json:"total_connections"`
	ActiveRooms      int            `json:"active_rooms"`
	RoomConnections  map[string]int `json:"room_connections"`
}

// DefaultConnectionConfig returns default WebSocket configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:        10 * time.Second,
		ReadTimeout:         60 * time.Second,
		PingInterval:        30 * time.Second,
		MaxMessageSize:      64 * 1024, // full scorecards travel through update-state
		ReadBufferSize:      1024,
		WriteBufferSize:     1024,
		SendBufferSize:      256,
		BroadcastBufferSize: 1000,
	}
}

// NewConnectionManager creates a new WebSocket connection manager
func NewConnectionManager(config ConnectionConfig, metrics *Metrics) *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[*Connection]bool),
		rooms:       make(map[string]map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		metrics:     metrics,
		broadcastCh: make(chan BroadcastMessage, config.BroadcastBufferSize),
	}
}

// Start processes broadcast messages until ctx is done, then closes every connection
func (cm *ConnectionManager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("connection manager shutting down")
			cm.closeAll()
			return
		case message := <-cm.broadcastCh:
			cm.handleBroadcast(message)
		}
	}
}

// UpgradeConnection upgrades an HTTP connection to WebSocket and starts its pumps.
// Frames read from the connection are passed to handler.
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, handler MessageHandler) (*Connection, error) {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade connection: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	connection := &Connection{
		ID:          uuid.New().String(),
		Conn:        conn,
		Send:        make(chan []byte, cm.config.SendBufferSize),
		Manager:     cm,
		ConnectedAt: time.Now(),
		ctx:         ctx,
		cancel:      cancel,
		handler:     handler,
	}

	cm.registerConnection(connection)

	go connection.writePump()
	go connection.readPump()

	log.Info().
		Str("connection_id", connection.ID).
		Str("remote_addr", r.RemoteAddr).
		Msg("WebSocket connection established")

	return connection, nil
}

// registerConnection adds a connection to the manager
func (cm *ConnectionManager) registerConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.connections[conn] = true
	cm.metrics.activeConnections.Inc()

	log.Debug().
		Str("connection_id", conn.ID).
		Int("total_connections", len(cm.connections)).
		Msg("connection registered")
}

// unregisterConnection removes a connection from the manager and closes its send channel
func (cm *ConnectionManager) unregisterConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn.closed {
		return
	}
	conn.closed = true
	delete(cm.connections, conn)
	cm.leaveRoomLocked(conn)
	close(conn.Send)
	conn.cancel()
	cm.metrics.activeConnections.Dec()

	log.Info().
		Str("connection_id", conn.ID).
		Str("user", conn.username).
		Str("room", conn.room).
		Msg("connection unregistered")
}

// leaveRoomLocked removes conn from its current room group; cm.mu must be held
func (cm *ConnectionManager) leaveRoomLocked(conn *Connection) {
	if conn.room == "" {
		return
	}
	if group, ok := cm.rooms[conn.room]; ok {
		delete(group, conn)
		// Clean up empty room groups
		if len(group) == 0 {
			delete(cm.rooms, conn.room)
		}
	}
}

// JoinGroup moves conn into the broadcast group of room. A connection belongs to at
// most one room. Returns false if the connection is already closed.
func (cm *ConnectionManager) JoinGroup(conn *Connection, room, username string) bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn.closed {
		return false
	}
	cm.leaveRoomLocked(conn)
	if cm.rooms[room] == nil {
		cm.rooms[room] = make(map[*Connection]bool)
	}
	cm.rooms[room][conn] = true
	conn.room = room
	conn.username = username

	log.Debug().
		Str("connection_id", conn.ID).
		Str("room", room).
		Int("room_connections", len(cm.rooms[room])).
		Msg("connection joined room group")
	return true
}

// RoomOf returns the room conn has joined, or "" if none
func (cm *ConnectionManager) RoomOf(conn *Connection) string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return conn.room
}

// BroadcastToRoom queues frame for every connection in room except exclude (which may be nil)
func (cm *ConnectionManager) BroadcastToRoom(room string, frame []byte, exclude *Connection) {
	select {
	case cm.broadcastCh <- BroadcastMessage{Room: room, Frame: frame, Exclude: exclude}:
	default:
		log.Warn().Str("room", room).Msg("broadcast channel full, dropping message")
	}
}

// Send queues frame for a single connection. A full send buffer closes the connection.
func (cm *ConnectionManager) Send(conn *Connection, frame []byte) bool {
	cm.mu.RLock()
	if conn.closed {
		cm.mu.RUnlock()
		return false
	}
	sent := true
	select {
	case conn.Send <- frame:
	default:
		sent = false
	}
	cm.mu.RUnlock()

	if !sent {
		cm.closeSlow(conn)
	}
	return sent
}

// handleBroadcast delivers a broadcast message to its room
func (cm *ConnectionManager) handleBroadcast(message BroadcastMessage) {
	var slow []*Connection
	delivered := 0

	// Sends happen under the read lock so no send channel can be closed meanwhile
	cm.mu.RLock()
	for conn := range cm.rooms[message.Room] {
		if conn == message.Exclude {
			continue
		}
		select {
		case conn.Send <- message.Frame:
			delivered++
		default:
			slow = append(slow, conn)
		}
	}
	cm.mu.RUnlock()

	for _, conn := range slow {
		cm.closeSlow(conn)
	}

	log.Debug().
		Str("room", message.Room).
		Int("connections", delivered).
		Msg("state broadcasted")
}

// closeSlow disconnects a connection whose send buffer is full
func (cm *ConnectionManager) closeSlow(conn *Connection) {
	log.Warn().
		Str("connection_id", conn.ID).
		Msg("connection send buffer full, closing connection")
	cm.metrics.slowConsumers.Inc()
	cm.unregisterConnection(conn)
	conn.Conn.Close()
}

// closeAll closes the network side of every connection; the pumps then unregister them
func (cm *ConnectionManager) closeAll() {
	cm.mu.RLock()
	conns := make([]*Connection, 0, len(cm.connections))
	for conn := range cm.connections {
		conns = append(conns, conn)
	}
	cm.mu.RUnlock()

	for _, conn := range conns {
		conn.Conn.Close()
	}
}

// GetConnectionStats returns statistics about active connections
func (cm *ConnectionManager) GetConnectionStats() ConnectionStats {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	roomCounts := make(map[string]int, len(cm.rooms))
	for room, group := range cm.rooms {
		roomCounts[room] = len(group)
	}

	return ConnectionStats{
		TotalConnections: len(cm.connections),
		ActiveRooms:      len(cm.rooms),
		RoomConnections:  roomCounts,
	}
}

// Context is canceled when the connection is unregistered
func (c *Connection) Context() context.Context {
	return c.ctx
}

// writePump handles sending messages to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.Manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Manager.unregisterConnection(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				// Channel was closed
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump handles reading messages from the WebSocket connection
func (c *Connection) readPump() {
	defer func() {
		c.Manager.unregisterConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected WebSocket close error")
			}
			break
		}

		c.handler.HandleMessage(c, message)
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	}
}
