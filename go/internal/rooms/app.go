package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/minigolf/go/internal/models"
	"github.com/mcdev12/minigolf/go/internal/users"
	"github.com/mcdev12/minigolf/go/internal/validate"
	"github.com/rs/zerolog/log"
)

// RoomsRepository defines what the app layer needs from the repository
type RoomsRepository interface {
	CreateRoom(ctx context.Context, name string) (*models.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	GetRoomByName(ctx context.Context, name string) (*models.Room, error)
	RoomExists(ctx context.Context, name string) (bool, error)
	JoinRoom(ctx context.Context, roomName string, userID uuid.UUID) (*models.Room, error)
	GetRoomMemberByName(ctx context.Context, roomID uuid.UUID, name string) (*models.User, error)
	ListRoomMembers(ctx context.Context, roomID uuid.UUID) ([]models.User, error)
	DeleteRoomsAccessedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// UsersApp defines what the rooms app needs from the users application
type UsersApp interface {
	GetOrCreateUser(ctx context.Context, req users.GetOrCreateUserRequest) (*models.User, error)
}

// App handles room registry and membership business logic
type App struct {
	repo  RoomsRepository
	users UsersApp
	names NameGenerator
}

// NewApp creates a new rooms App
func NewApp(repo RoomsRepository, usersApp UsersApp, names NameGenerator) *App {
	return &App{
		repo:  repo,
		users: usersApp,
		names: names,
	}
}

// RoomExists reports whether a room with the given name exists
func (a *App) RoomExists(ctx context.Context, name string) (bool, error) {
	return a.repo.RoomExists(ctx, NormalizeRoomName(name))
}

// CreateRoom creates a room with the given name; ErrRoomExists if it is taken
func (a *App) CreateRoom(ctx context.Context, name string) (*models.Room, error) {
	name = NormalizeRoomName(name)
	if name == "" {
		return nil, fmt.Errorf("validation failed: %w", &validate.Error{Messages: []string{"room name is required"}})
	}

	room, err := a.repo.CreateRoom(ctx, name)
	if err != nil {
		return nil, err
	}

	log.Info().Str("room", room.Name).Str("room_id", room.ID.String()).Msg("created room")
	return room, nil
}

// CreateRandomRoom creates a room under a freshly generated name, retrying with a new
// name for as long as the generated one is taken.
func (a *App) CreateRandomRoom(ctx context.Context) (*models.Room, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		room, err := a.CreateRoom(ctx, a.names.Generate())
		if errors.Is(err, ErrRoomExists) {
			log.Debug().Msg("generated room name already taken, retrying")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create room: %w", err)
		}
		return room, nil
	}
}

// GetRoomByName retrieves a room by name
func (a *App) GetRoomByName(ctx context.Context, name string) (*models.Room, error) {
	return a.repo.GetRoomByName(ctx, NormalizeRoomName(name))
}

// JoinRoom ensures the room and the user exist and makes the user a member.
// The room is created atomically when absent, so concurrent first joins share one room.
func (a *App) JoinRoom(ctx context.Context, req JoinRoomRequest) (*Membership, error) {
	req.RoomName = NormalizeRoomName(req.RoomName)
	req.Username = strings.TrimSpace(req.Username)
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	roomName := req.RoomName

	user, err := a.users.GetOrCreateUser(ctx, users.GetOrCreateUserRequest{Name: req.Username})
	if err != nil {
		return nil, err
	}

	room, err := a.repo.JoinRoom(ctx, roomName, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to join room %s: %w", roomName, err)
	}

	log.Info().
		Str("room", room.Name).
		Str("user", user.Name).
		Msg("user joined room")

	return &Membership{Room: *room, User: *user}, nil
}

// ValidateUserIsInRoom returns the member named username of the room, or ErrRoomNotFound /
// ErrUserNotInRoom.
func (a *App) ValidateUserIsInRoom(ctx context.Context, username string, roomID uuid.UUID) (*models.User, error) {
	room, err := a.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	user, err := a.repo.GetRoomMemberByName(ctx, room.ID, username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListMembers lists the users of the named room
func (a *App) ListMembers(ctx context.Context, roomName string) ([]models.User, error) {
	room, err := a.GetRoomByName(ctx, roomName)
	if err != nil {
		return nil, err
	}
	return a.repo.ListRoomMembers(ctx, room.ID)
}

// DeleteStaleRooms deletes rooms not accessed since cutoff (inclusive)
func (a *App) DeleteStaleRooms(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := a.repo.DeleteRoomsAccessedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	log.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("deleted stale rooms")
	return n, nil
}
