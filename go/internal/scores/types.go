package scores

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrUserScoreNotFound is returned when no score record matches the id
	ErrUserScoreNotFound = errors.New("user score not found")
	// ErrUserScoreNotOwned is returned when a score record belongs to another user
	ErrUserScoreNotOwned = errors.New("user score does not belong to user")
)

// CreateHoleRequest represents the data needed to append a hole to a room
type CreateHoleRequest struct {
	RoomID uuid.UUID `json:"roomId" validate:"required"`
	Number int       `json:"holeNumber" validate:"min=1"`
	Par    *int      `json:"par,omitempty" validate:"omitempty,min=1"`
}

// CreateHoleBody is the body of POST /create-hole
type CreateHoleBody struct {
	RoomID     uuid.UUID `json:"roomId" validate:"required"`
	HoleNumber int       `json:"holeNumber" validate:"min=1"`
	Username   string    `json:"username" validate:"required"`
	Par        *int      `json:"par,omitempty" validate:"omitempty,min=1"`
}

// RoomScoreBody is the body of POST /room-score/{roomName}
type RoomScoreBody struct {
	Username string `json:"username" validate:"required"`
}

// UpdateScoreBody is the body of POST /update-score. A null score clears the entry.
type UpdateScoreBody struct {
	RoomID      uuid.UUID `json:"roomId" validate:"required"`
	Username    string    `json:"username" validate:"required"`
	UserScoreID uuid.UUID `json:"userScoreId" validate:"required"`
	Score       *int      `json:"score"`
}
