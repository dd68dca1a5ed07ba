package scores

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mcdev12/minigolf/go/internal/httputil"
	"github.com/mcdev12/minigolf/go/internal/models"
	"github.com/mcdev12/minigolf/go/internal/rooms"
	"github.com/mcdev12/minigolf/go/internal/validate"
	"github.com/rs/zerolog/log"
)

// ScoresApp defines what the HTTP service needs from the scores application
type ScoresApp interface {
	GetRoomScore(ctx context.Context, roomName string) (*models.RoomScore, error)
	UpdatePlayerScore(ctx context.Context, userScoreID uuid.UUID, newScore *int) (*models.UserScore, error)
	ValidateUserIDOwnsUserScore(ctx context.Context, userID, userScoreID uuid.UUID) error
	CreateNewHole(ctx context.Context, req CreateHoleRequest) (*models.Hole, error)
}

// RoomsApp defines what the HTTP service needs from the rooms application
type RoomsApp interface {
	GetRoomByName(ctx context.Context, name string) (*models.Room, error)
	ValidateUserIsInRoom(ctx context.Context, username string, roomID uuid.UUID) (*models.User, error)
}

// Service exposes holes and scores over HTTP
type Service struct {
	app   ScoresApp
	rooms RoomsApp
}

// NewService creates a new scores HTTP service
func NewService(app ScoresApp, roomsApp RoomsApp) *Service {
	return &Service{
		app:   app,
		rooms: roomsApp,
	}
}

// CreateHole handles POST /create-hole
func (s *Service) CreateHole(w http.ResponseWriter, r *http.Request) {
	var body CreateHoleBody
	if err := httputil.DecodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	if _, err := s.rooms.ValidateUserIsInRoom(r.Context(), body.Username, body.RoomID); err != nil {
		writeError(w, err)
		return
	}

	hole, err := s.app.CreateNewHole(r.Context(), CreateHoleRequest{
		RoomID: body.RoomID,
		Number: body.HoleNumber,
		Par:    body.Par,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, hole)
}

// RoomScore handles POST /room-score/{roomName}
func (s *Service) RoomScore(w http.ResponseWriter, r *http.Request) {
	var body RoomScoreBody
	if err := httputil.DecodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	room, err := s.rooms.GetRoomByName(r.Context(), r.PathValue("roomName"))
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := s.rooms.ValidateUserIsInRoom(r.Context(), body.Username, room.ID); err != nil {
		writeError(w, err)
		return
	}

	scorecard, err := s.app.GetRoomScore(r.Context(), room.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, scorecard)
}

// UpdateScore handles POST /update-score. The caller must be a member of the room and own
// the score record.
func (s *Service) UpdateScore(w http.ResponseWriter, r *http.Request) {
	var body UpdateScoreBody
	if err := httputil.DecodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.rooms.ValidateUserIsInRoom(r.Context(), body.Username, body.RoomID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.app.ValidateUserIDOwnsUserScore(r.Context(), user.ID, body.UserScoreID); err != nil {
		writeError(w, err)
		return
	}

	score, err := s.app.UpdatePlayerScore(r.Context(), body.UserScoreID, body.Score)
	if err != nil {
		writeError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, score)
}

// RegisterRoutes registers the score routes with an HTTP mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /create-hole", s.CreateHole)
	mux.HandleFunc("POST /room-score/{roomName}", s.RoomScore)
	mux.HandleFunc("POST /update-score", s.UpdateScore)
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	switch {
	case validate.IsValidationError(err):
		httputil.WriteError(w, http.StatusBadRequest, err)
	case errors.Is(err, rooms.ErrRoomNotFound),
		errors.Is(err, rooms.ErrUserNotInRoom),
		errors.Is(err, ErrUserScoreNotFound),
		errors.Is(err, ErrUserScoreNotOwned):
		httputil.WriteError(w, http.StatusForbidden, err)
	default:
		log.Error().Err(err).Msg("scores request failed")
		httputil.WriteError(w, http.StatusServiceUnavailable, err)
	}
}
