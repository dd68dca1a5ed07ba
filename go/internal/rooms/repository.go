package rooms

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/minigolf/go/internal/db"
	"github.com/mcdev12/minigolf/go/internal/models"
	"github.com/mcdev12/minigolf/go/internal/sqlutil"
	"github.com/mcdev12/minigolf/go/internal/users"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateRoom(ctx context.Context, arg db.CreateRoomParams) (db.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (db.Room, error)
	GetRoomByName(ctx context.Context, name string) (db.Room, error)
	RoomExists(ctx context.Context, name string) (bool, error)
	DeleteRoomsAccessedBefore(ctx context.Context, lastAccessed time.Time) (int64, error)
	GetRoomMemberByName(ctx context.Context, arg db.GetRoomMemberByNameParams) (db.User, error)
	ListRoomMembers(ctx context.Context, roomID uuid.UUID) ([]db.User, error)
}

// Repository implements room and membership data access operations
type Repository struct {
	db      sqlutil.TxBeginner
	queries Querier
}

// NewRepository creates a new rooms repository. database is used for the join transaction.
func NewRepository(database sqlutil.TxBeginner, querier Querier) *Repository {
	return &Repository{
		db:      database,
		queries: querier,
	}
}

// CreateRoom inserts a room, failing with ErrRoomExists when the name is taken.
// The insert uses ON CONFLICT DO NOTHING so a concurrent creator observes no row.
func (r *Repository) CreateRoom(ctx context.Context, name string) (*models.Room, error) {
	room, err := r.queries.CreateRoom(ctx, db.CreateRoomParams{
		ID:   uuid.New(),
		Name: name,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || sqlutil.IsUniqueViolation(err) {
			return nil, ErrRoomExists
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return dbRoomToModel(room), nil
}

// GetRoom retrieves a room by ID
func (r *Repository) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, err := r.queries.GetRoom(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return dbRoomToModel(room), nil
}

// GetRoomByName retrieves a room by its unique name
func (r *Repository) GetRoomByName(ctx context.Context, name string) (*models.Room, error) {
	room, err := r.queries.GetRoomByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room by name: %w", err)
	}

	return dbRoomToModel(room), nil
}

// RoomExists reports whether a room with the name exists
func (r *Repository) RoomExists(ctx context.Context, name string) (bool, error) {
	exists, err := r.queries.RoomExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to check room existence: %w", err)
	}
	return exists, nil
}

// JoinRoom creates the room if absent (touching it otherwise), adds the user as a member
// and creates the user's missing score rows, all in one transaction.
func (r *Repository) JoinRoom(ctx context.Context, roomName string, userID uuid.UUID) (*models.Room, error) {
	var joined db.Room
	err := sqlutil.Run(ctx, r.db, bindQueries, func(q *db.Queries) error {
		room, err := q.UpsertRoom(ctx, db.UpsertRoomParams{
			ID:   uuid.New(),
			Name: roomName,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert room: %w", err)
		}

		if err := q.AddRoomMember(ctx, db.AddRoomMemberParams{
			RoomID: room.ID,
			UserID: userID,
		}); err != nil {
			return fmt.Errorf("failed to add room member: %w", err)
		}

		if _, err := q.CreateMissingUserScoresForUser(ctx, db.CreateMissingUserScoresForUserParams{
			RoomID: room.ID,
			UserID: userID,
		}); err != nil {
			return fmt.Errorf("failed to create user scores: %w", err)
		}

		joined = room
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dbRoomToModel(joined), nil
}

// GetRoomMemberByName returns the member of the room with the given name
func (r *Repository) GetRoomMemberByName(ctx context.Context, roomID uuid.UUID, name string) (*models.User, error) {
	user, err := r.queries.GetRoomMemberByName(ctx, db.GetRoomMemberByNameParams{
		RoomID: roomID,
		Name:   name,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotInRoom
		}
		return nil, fmt.Errorf("failed to get room member: %w", err)
	}

	return users.DBUserToModel(user), nil
}

// ListRoomMembers lists the users of a room in join order
func (r *Repository) ListRoomMembers(ctx context.Context, roomID uuid.UUID) ([]models.User, error) {
	rows, err := r.queries.ListRoomMembers(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list room members: %w", err)
	}

	members := make([]models.User, 0, len(rows))
	for _, row := range rows {
		members = append(members, *users.DBUserToModel(row))
	}
	return members, nil
}

// DeleteRoomsAccessedBefore removes rooms whose last access is at or before cutoff
func (r *Repository) DeleteRoomsAccessedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.queries.DeleteRoomsAccessedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale rooms: %w", err)
	}
	return n, nil
}

func bindQueries(tx *sql.Tx) *db.Queries {
	return db.New(tx)
}

// dbRoomToModel converts a database room to domain model
func dbRoomToModel(dbRoom db.Room) *models.Room {
	return &models.Room{
		ID:           dbRoom.ID,
		Name:         dbRoom.Name,
		LastAccessed: dbRoom.LastAccessed,
		CreatedAt:    dbRoom.CreatedAt,
	}
}
