// Mirrors the sqlc output for the schema in sql/schema; `sqlc generate` reproduces this file.

package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Hole struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	Number    int32
	Par       sql.NullInt32
	CreatedAt time.Time
}

type Room struct {
	ID           uuid.UUID
	Name         string
	LastAccessed time.Time
	CreatedAt    time.Time
}

type RoomMember struct {
	RoomID   uuid.UUID
	UserID   uuid.UUID
	JoinedAt time.Time
}

type User struct {
	ID           uuid.UUID
	Name         string
	LastAccessed time.Time
	CreatedAt    time.Time
}

type UserScore struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	HoleID       uuid.UUID
	Score        sql.NullInt32
	LastAccessed time.Time
}
