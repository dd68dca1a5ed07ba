package models

import (
	"time"

	"github.com/google/uuid"
)

// UserScore is the score a user recorded for a hole. Score stays nil until set.
type UserScore struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	HoleID       uuid.UUID `json:"holeId"`
	Score        *int      `json:"score"`
	LastAccessed time.Time `json:"lastAccessed"`
}

// PlayerScores holds one entry per hole of the room, in hole order
type PlayerScores struct {
	ID     uuid.UUID   `json:"id"`
	Name   string      `json:"name"`
	Scores []UserScore `json:"scores"`
}

// RoomScore is the full scorecard of a room
type RoomScore struct {
	Holes   []Hole         `json:"holes"`
	Players []PlayerScores `json:"players"`
}
