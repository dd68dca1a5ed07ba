package rooms

import (
	"context"
	"errors"
	"net/http"

	"github.com/mcdev12/minigolf/go/internal/httputil"
	"github.com/mcdev12/minigolf/go/internal/models"
	"github.com/rs/zerolog/log"
)

// RoomsApp defines what the HTTP service needs from the rooms application
type RoomsApp interface {
	CreateRandomRoom(ctx context.Context) (*models.Room, error)
	ListMembers(ctx context.Context, roomName string) ([]models.User, error)
}

// Service exposes the room registry over HTTP
type Service struct {
	app RoomsApp
}

// NewService creates a new rooms HTTP service
func NewService(app RoomsApp) *Service {
	return &Service{
		app: app,
	}
}

// CreateRoom handles POST /create-room
func (s *Service) CreateRoom(w http.ResponseWriter, r *http.Request) {
	room, err := s.app.CreateRandomRoom(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to create room")
		httputil.WriteError(w, http.StatusServiceUnavailable, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, CreateRoomResponse{Room: room.Name})
}

// RoomMembers handles GET /room-members/{roomName}
func (s *Service) RoomMembers(w http.ResponseWriter, r *http.Request) {
	roomName := NormalizeRoomName(r.PathValue("roomName"))

	members, err := s.app.ListMembers(r.Context(), roomName)
	if errors.Is(err, ErrRoomNotFound) {
		httputil.WriteError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("room", roomName).Msg("failed to list room members")
		httputil.WriteError(w, http.StatusServiceUnavailable, err)
		return
	}

	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	httputil.WriteJSON(w, http.StatusOK, RoomMembersResponse{Room: roomName, Members: names})
}

// RegisterRoutes registers the room routes with an HTTP mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /create-room", s.CreateRoom)
	mux.HandleFunc("GET /room-members/{roomName}", s.RoomMembers)
}
