// Mirrors the sqlc output for sql/queries/rooms.sql. Keep the two in sync;
// `sqlc generate` reproduces this file.

package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const addRoomMember = `-- name: AddRoomMember :exec
INSERT INTO room_members (room_id, user_id)
VALUES ($1, $2)
ON CONFLICT (room_id, user_id) DO NOTHING
`

type AddRoomMemberParams struct {
	RoomID uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) AddRoomMember(ctx context.Context, arg AddRoomMemberParams) error {
	_, err := q.db.ExecContext(ctx, addRoomMember, arg.RoomID, arg.UserID)
	return err
}

const createRoom = `-- name: CreateRoom :one
INSERT INTO rooms (id, name)
VALUES ($1, $2)
ON CONFLICT (name) DO NOTHING
RETURNING id, name, last_accessed, created_at
`

type CreateRoomParams struct {
	ID   uuid.UUID
	Name string
}

func (q *Queries) CreateRoom(ctx context.Context, arg CreateRoomParams) (Room, error) {
	row := q.db.QueryRowContext(ctx, createRoom, arg.ID, arg.Name)
	var i Room
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.LastAccessed,
		&i.CreatedAt,
	)
	return i, err
}

const deleteRoomsAccessedBefore = `-- name: DeleteRoomsAccessedBefore :execrows
DELETE FROM rooms WHERE last_accessed <= $1
`

func (q *Queries) DeleteRoomsAccessedBefore(ctx context.Context, lastAccessed time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteRoomsAccessedBefore, lastAccessed)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getRoom = `-- name: GetRoom :one
SELECT id, name, last_accessed, created_at FROM rooms WHERE id = $1
`

func (q *Queries) GetRoom(ctx context.Context, id uuid.UUID) (Room, error) {
	row := q.db.QueryRowContext(ctx, getRoom, id)
	var i Room
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.LastAccessed,
		&i.CreatedAt,
	)
	return i, err
}

const getRoomByName = `-- name: GetRoomByName :one
SELECT id, name, last_accessed, created_at FROM rooms WHERE name = $1
`

func (q *Queries) GetRoomByName(ctx context.Context, name string) (Room, error) {
	row := q.db.QueryRowContext(ctx, getRoomByName, name)
	var i Room
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.LastAccessed,
		&i.CreatedAt,
	)
	return i, err
}

const getRoomMemberByName = `-- name: GetRoomMemberByName :one
SELECT u.id, u.name, u.last_accessed, u.created_at
FROM users u
JOIN room_members m ON m.user_id = u.id
WHERE m.room_id = $1 AND u.name = $2
`

type GetRoomMemberByNameParams struct {
	RoomID uuid.UUID
	Name   string
}

func (q *Queries) GetRoomMemberByName(ctx context.Context, arg GetRoomMemberByNameParams) (User, error) {
	row := q.db.QueryRowContext(ctx, getRoomMemberByName, arg.RoomID, arg.Name)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.LastAccessed,
		&i.CreatedAt,
	)
	return i, err
}

const listRoomMembers = `-- name: ListRoomMembers :many
SELECT u.id, u.name, u.last_accessed, u.created_at
FROM users u
JOIN room_members m ON m.user_id = u.id
WHERE m.room_id = $1
ORDER BY m.joined_at, u.name
`

func (q *Queries) ListRoomMembers(ctx context.Context, roomID uuid.UUID) ([]User, error) {
	rows, err := q.db.QueryContext(ctx, listRoomMembers, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []User
	for rows.Next() {
		var i User
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.LastAccessed,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const roomExists = `-- name: RoomExists :one
SELECT EXISTS (SELECT 1 FROM rooms WHERE name = $1)
`

func (q *Queries) RoomExists(ctx context.Context, name string) (bool, error) {
	row := q.db.QueryRowContext(ctx, roomExists, name)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const touchRoom = `-- name: TouchRoom :exec
UPDATE rooms SET last_accessed = now() WHERE id = $1
`

func (q *Queries) TouchRoom(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, touchRoom, id)
	return err
}

const upsertRoom = `-- name: UpsertRoom :one
INSERT INTO rooms (id, name)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET last_accessed = now()
RETURNING id, name, last_accessed, created_at
`

type UpsertRoomParams struct {
	ID   uuid.UUID
	Name string
}

func (q *Queries) UpsertRoom(ctx context.Context, arg UpsertRoomParams) (Room, error) {
	row := q.db.QueryRowContext(ctx, upsertRoom, arg.ID, arg.Name)
	var i Room
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.LastAccessed,
		&i.CreatedAt,
	)
	return i, err
}
