package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/minigolf/go/internal/db"
	"github.com/mcdev12/minigolf/go/internal/models"
	"github.com/mcdev12/minigolf/go/internal/rooms"
	"github.com/mcdev12/minigolf/go/internal/sqlutil"
	"github.com/mcdev12/minigolf/go/internal/users"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	GetRoomByName(ctx context.Context, name string) (db.Room, error)
	TouchRoom(ctx context.Context, id uuid.UUID) error
	ListRoomMembers(ctx context.Context, roomID uuid.UUID) ([]db.User, error)
	ListHolesByRoom(ctx context.Context, roomID uuid.UUID) ([]db.Hole, error)
	CreateMissingUserScores(ctx context.Context, roomID uuid.UUID) (int64, error)
	ListUserScoresByRoom(ctx context.Context, roomID uuid.UUID) ([]db.UserScore, error)
	GetUserScore(ctx context.Context, id uuid.UUID) (db.UserScore, error)
	UpdateUserScore(ctx context.Context, arg db.UpdateUserScoreParams) (db.UserScore, error)
}

// Repository implements hole and score data access operations
type Repository struct {
	db      sqlutil.TxBeginner
	queries Querier
}

// NewRepository creates a new scores repository. database is used for the create-hole transaction.
func NewRepository(database sqlutil.TxBeginner, querier Querier) *Repository {
	return &Repository{
		db:      database,
		queries: querier,
	}
}

// GetRoomByName retrieves the room a scorecard belongs to
func (r *Repository) GetRoomByName(ctx context.Context, name string) (*models.Room, error) {
	room, err := r.queries.GetRoomByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, rooms.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room by name: %w", err)
	}

	return &models.Room{
		ID:           room.ID,
		Name:         room.Name,
		LastAccessed: room.LastAccessed,
		CreatedAt:    room.CreatedAt,
	}, nil
}

// TouchRoom refreshes the room's last access time
func (r *Repository) TouchRoom(ctx context.Context, roomID uuid.UUID) error {
	if err := r.queries.TouchRoom(ctx, roomID); err != nil {
		return fmt.Errorf("failed to touch room: %w", err)
	}
	return nil
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

// ListHoles lists the holes of a room ordered by number
func (r *Repository) ListHoles(ctx context.Context, roomID uuid.UUID) ([]models.Hole, error) {
	rows, err := r.queries.ListHolesByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holes: %w", err)
	}

	holes := make([]models.Hole, 0, len(rows))
	for _, row := range rows {
		holes = append(holes, dbHoleToModel(row))
	}
	return holes, nil
}

// CreateMissingUserScores creates an empty score for every (member, hole) pair of the room
// that has none yet, returning how many were created
func (r *Repository) CreateMissingUserScores(ctx context.Context, roomID uuid.UUID) (int64, error) {
	n, err := r.queries.CreateMissingUserScores(ctx, roomID)
	if err != nil {
		return 0, fmt.Errorf("failed to create missing user scores: %w", err)
	}
	return n, nil
}

// ListUserScores lists every score record of the room
func (r *Repository) ListUserScores(ctx context.Context, roomID uuid.UUID) ([]models.UserScore, error) {
	rows, err := r.queries.ListUserScoresByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user scores: %w", err)
	}

	scores := make([]models.UserScore, 0, len(rows))
	for _, row := range rows {
		scores = append(scores, dbUserScoreToModel(row))
	}
	return scores, nil
}

// GetUserScore retrieves a score record by ID
func (r *Repository) GetUserScore(ctx context.Context, id uuid.UUID) (*models.UserScore, error) {
	score, err := r.queries.GetUserScore(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserScoreNotFound
		}
		return nil, fmt.Errorf("failed to get user score: %w", err)
	}

	s := dbUserScoreToModel(score)
	return &s, nil
}

// UpdateUserScore overwrites a score value and touches its last access time
func (r *Repository) UpdateUserScore(ctx context.Context, id uuid.UUID, score *int) (*models.UserScore, error) {
	updated, err := r.queries.UpdateUserScore(ctx, db.UpdateUserScoreParams{
		ID:    id,
		Score: sqlutil.ToSqlInt32(score),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserScoreNotFound
		}
		return nil, fmt.Errorf("failed to update user score: %w", err)
	}

	s := dbUserScoreToModel(updated)
	return &s, nil
}

// CreateHole inserts a hole and the empty scores of the room's current members in one transaction
func (r *Repository) CreateHole(ctx context.Context, roomID uuid.UUID, number int, par *int) (*models.Hole, error) {
	var created db.Hole
	err := sqlutil.Run(ctx, r.db, bindQueries, func(q *db.Queries) error {
		hole, err := q.CreateHole(ctx, db.CreateHoleParams{
			ID:     uuid.New(),
			RoomID: roomID,
			Number: int32(number),
			Par:    sqlutil.ToSqlInt32(par),
		})
		if err != nil {
			return fmt.Errorf("failed to create hole: %w", err)
		}

		if _, err := q.CreateMissingUserScores(ctx, roomID); err != nil {
			return fmt.Errorf("failed to create user scores: %w", err)
		}

		created = hole
		return nil
	})
	if err != nil {
		return nil, err
	}

	hole := dbHoleToModel(created)
	return &hole, nil
}

func bindQueries(tx *sql.Tx) *db.Queries {
	return db.New(tx)
}

// dbHoleToModel converts a database hole to domain model
func dbHoleToModel(h db.Hole) models.Hole {
	return models.Hole{
		ID:        h.ID,
		RoomID:    h.RoomID,
		Number:    int(h.Number),
		Par:       sqlutil.FromSqlInt32(h.Par),
		CreatedAt: h.CreatedAt,
	}
}

// dbUserScoreToModel converts a database user score to domain model
func dbUserScoreToModel(s db.UserScore) models.UserScore {
	return models.UserScore{
		ID:           s.ID,
		UserID:       s.UserID,
		HoleID:       s.HoleID,
		Score:        sqlutil.FromSqlInt32(s.Score),
		LastAccessed: s.LastAccessed,
	}
}
