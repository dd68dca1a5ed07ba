// Mirrors the sqlc output for sql/queries/users.sql. Keep the two in sync;
// `sqlc generate` reproduces this file.

package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const deleteUsersAccessedBefore = `-- name: DeleteUsersAccessedBefore :execrows
DELETE FROM users WHERE last_accessed <= $1
`

func (q *Queries) DeleteUsersAccessedBefore(ctx context.Context, lastAccessed time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteUsersAccessedBefore, lastAccessed)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const upsertUser = `-- name: UpsertUser :one
INSERT INTO users (id, name)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET last_accessed = now()
RETURNING id, name, last_accessed, created_at
`

type UpsertUserParams struct {
	ID   uuid.UUID
	Name string
}

func (q *Queries) UpsertUser(ctx context.Context, arg UpsertUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, upsertUser, arg.ID, arg.Name)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.LastAccessed,
		&i.CreatedAt,
	)
	return i, err
}
