package users

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/minigolf/go/internal/db"
	"github.com/mcdev12/minigolf/go/internal/models"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	UpsertUser(ctx context.Context, arg db.UpsertUserParams) (db.User, error)
	DeleteUsersAccessedBefore(ctx context.Context, lastAccessed time.Time) (int64, error)
}

// Repository implements user data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new users repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// UpsertUser creates the user or, when the name is taken, touches and returns the existing one
func (r *Repository) UpsertUser(ctx context.Context, name string) (*models.User, error) {
	user, err := r.queries.UpsertUser(ctx, db.UpsertUserParams{
		ID:   uuid.New(),
		Name: name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return DBUserToModel(user), nil
}

// DeleteUsersAccessedBefore removes users whose last access is at or before cutoff
func (r *Repository) DeleteUsersAccessedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.queries.DeleteUsersAccessedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale users: %w", err)
	}
	return n, nil
}

// DBUserToModel converts a database user to domain model
func DBUserToModel(dbUser db.User) *models.User {
	return &models.User{
		ID:           dbUser.ID,
		Name:         dbUser.Name,
		LastAccessed: dbUser.LastAccessed,
		CreatedAt:    dbUser.CreatedAt,
	}
}
