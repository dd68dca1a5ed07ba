// Mirrors the sqlc output for sql/queries/scores.sql. Keep the two in sync;
// `sqlc generate` reproduces this file.

package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const createHole = `-- name: CreateHole :one
INSERT INTO holes (id, room_id, number, par)
VALUES ($1, $2, $3, $4)
RETURNING id, room_id, number, par, created_at
`

type CreateHoleParams struct {
	ID     uuid.UUID
	RoomID uuid.UUID
	Number int32
	Par    sql.NullInt32
}

func (q *Queries) CreateHole(ctx context.Context, arg CreateHoleParams) (Hole, error) {
	row := q.db.QueryRowContext(ctx, createHole,
		arg.ID,
		arg.RoomID,
		arg.Number,
		arg.Par,
	)
	var i Hole
	err := row.Scan(
		&i.ID,
		&i.RoomID,
		&i.Number,
		&i.Par,
		&i.CreatedAt,
	)
	return i, err
}

const createMissingUserScores = `-- name: CreateMissingUserScores :execrows
INSERT INTO user_scores (user_id, hole_id)
SELECT m.user_id, h.id
FROM room_members m
JOIN holes h ON h.room_id = m.room_id
WHERE m.room_id = $1
ON CONFLICT (user_id, hole_id) DO NOTHING
`

func (q *Queries) CreateMissingUserScores(ctx context.Context, roomID uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, createMissingUserScores, roomID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createMissingUserScoresForUser = `-- name: CreateMissingUserScoresForUser :execrows
INSERT INTO user_scores (user_id, hole_id)
SELECT m.user_id, h.id
FROM room_members m
JOIN holes h ON h.room_id = m.room_id
WHERE m.room_id = $1 AND m.user_id = $2
ON CONFLICT (user_id, hole_id) DO NOTHING
`

type CreateMissingUserScoresForUserParams struct {
	RoomID uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) CreateMissingUserScoresForUser(ctx context.Context, arg CreateMissingUserScoresForUserParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createMissingUserScoresForUser, arg.RoomID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getUserScore = `-- name: GetUserScore :one
SELECT id, user_id, hole_id, score, last_accessed FROM user_scores WHERE id = $1
`

func (q *Queries) GetUserScore(ctx context.Context, id uuid.UUID) (UserScore, error) {
	row := q.db.QueryRowContext(ctx, getUserScore, id)
	var i UserScore
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.HoleID,
		&i.Score,
		&i.LastAccessed,
	)
	return i, err
}

const listHolesByRoom = `-- name: ListHolesByRoom :many
SELECT id, room_id, number, par, created_at
FROM holes
WHERE room_id = $1
ORDER BY number ASC, created_at ASC
`

func (q *Queries) ListHolesByRoom(ctx context.Context, roomID uuid.UUID) ([]Hole, error) {
	rows, err := q.db.QueryContext(ctx, listHolesByRoom, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Hole
	for rows.Next() {
		var i Hole
		if err := rows.Scan(
			&i.ID,
			&i.RoomID,
			&i.Number,
			&i.Par,
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

const listUserScoresByRoom = `-- name: ListUserScoresByRoom :many
SELECT s.id, s.user_id, s.hole_id, s.score, s.last_accessed
FROM user_scores s
JOIN holes h ON h.id = s.hole_id
WHERE h.room_id = $1
`

func (q *Queries) ListUserScoresByRoom(ctx context.Context, roomID uuid.UUID) ([]UserScore, error) {
	rows, err := q.db.QueryContext(ctx, listUserScoresByRoom, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []UserScore
	for rows.Next() {
		var i UserScore
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.HoleID,
			&i.Score,
			&i.LastAccessed,
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

const updateUserScore = `-- name: UpdateUserScore :one
UPDATE user_scores
SET score = $2, last_accessed = now()
WHERE id = $1
RETURNING id, user_id, hole_id, score, last_accessed
`

type UpdateUserScoreParams struct {
	ID    uuid.UUID
	Score sql.NullInt32
}

func (q *Queries) UpdateUserScore(ctx context.Context, arg UpdateUserScoreParams) (UserScore, error) {
	row := q.db.QueryRowContext(ctx, updateUserScore, arg.ID, arg.Score)
	var i UserScore
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.HoleID,
		&i.Score,
		&i.LastAccessed,
	)
	return i, err
}
