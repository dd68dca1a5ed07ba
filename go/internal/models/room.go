package models

import (
	"time"

	"github.com/google/uuid"
)

// Room represents a named, time-limited scorekeeping session
type Room struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	LastAccessed time.Time `json:"lastAccessed"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Hole is one scoring unit within a room
type Hole struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"roomId"`
	Number    int       `json:"number"`
	Par       *int      `json:"par"`
	CreatedAt time.Time `json:"createdAt"`
}
