package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a player known by name across rooms
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	LastAccessed time.Time `json:"lastAccessed"`
	CreatedAt    time.Time `json:"createdAt"`
}
