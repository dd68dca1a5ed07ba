package rooms

import (
	"errors"

	"github.com/mcdev12/minigolf/go/internal/models"
)

var (
	// ErrRoomExists is returned when creating a room whose name is already taken
	ErrRoomExists = errors.New("room already exists")
	// ErrRoomNotFound is returned when no room matches the lookup
	ErrRoomNotFound = errors.New("room not found")
	// ErrUserNotInRoom is returned when a user is not a member of the room
	ErrUserNotInRoom = errors.New("user not found in room")
)

// JoinRoomRequest represents the data needed to join (and lazily create) a room
type JoinRoomRequest struct {
	RoomName string `json:"roomName" validate:"required"`
	Username string `json:"username" validate:"required"`
}

// Membership is the result of a successful join
type Membership struct {
	Room models.Room `json:"room"`
	User models.User `json:"user"`
}

// CreateRoomResponse is returned by POST /create-room
type CreateRoomResponse struct {
	Room string `json:"room"`
}

// RoomMembersResponse is returned by GET /room-members/{roomName}, members in join order
type RoomMembersResponse struct {
	Room    string   `json:"room"`
	Members []string `json:"members"`
}
