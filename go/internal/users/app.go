package users

import (
	"context"
	"fmt"
	"time"

	"github.com/mcdev12/minigolf/go/internal/models"
	"github.com/mcdev12/minigolf/go/internal/validate"
	"github.com/rs/zerolog/log"
)

// UsersRepository defines what the app layer needs from the repository
type UsersRepository interface {
	UpsertUser(ctx context.Context, name string) (*models.User, error)
	DeleteUsersAccessedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// App handles users business logic
type App struct {
	repo UsersRepository
}

// NewApp creates a new users App
func NewApp(repo UsersRepository) *App {
	return &App{
		repo: repo,
	}
}

// GetOrCreateUser returns the user with the given name, creating it on first use.
// Either way the user's last access time is refreshed.
func (a *App) GetOrCreateUser(ctx context.Context, req GetOrCreateUserRequest) (*models.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := a.repo.UpsertUser(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}

	log.Debug().Str("user_id", user.ID.String()).Str("name", user.Name).Msg("user ready")
	return user, nil
}

// DeleteStaleUsers deletes users not accessed since cutoff (inclusive)
func (a *App) DeleteStaleUsers(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := a.repo.DeleteUsersAccessedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	log.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("deleted stale users")
	return n, nil
}
