package scores

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/minigolf/go/internal/models"
	"github.com/mcdev12/minigolf/go/internal/rooms"
	"github.com/mcdev12/minigolf/go/internal/validate"
	"github.com/rs/zerolog/log"
)

// ScoresRepository defines what the app layer needs from the repository
type ScoresRepository interface {
	GetRoomByName(ctx context.Context, name string) (*models.Room, error)
	TouchRoom(ctx context.Context, roomID uuid.UUID) error
	ListRoomMembers(ctx context.Context, roomID uuid.UUID) ([]models.User, error)
	ListHoles(ctx context.Context, roomID uuid.UUID) ([]models.Hole, error)
	CreateMissingUserScores(ctx context.Context, roomID uuid.UUID) (int64, error)
	ListUserScores(ctx context.Context, roomID uuid.UUID) ([]models.UserScore, error)
	GetUserScore(ctx context.Context, id uuid.UUID) (*models.UserScore, error)
	UpdateUserScore(ctx context.Context, id uuid.UUID, score *int) (*models.UserScore, error)
	CreateHole(ctx context.Context, roomID uuid.UUID, number int, par *int) (*models.Hole, error)
}

// App handles the scorecard business logic
type App struct {
	repo ScoresRepository
}

// NewApp creates a new scores App
func NewApp(repo ScoresRepository) *App {
	return &App{
		repo: repo,
	}
}

type scoreKey struct {
	userID uuid.UUID
	holeID uuid.UUID
}

// GetRoomScore returns the scorecard of the named room: its holes by number and every member
// with exactly one entry per hole, in hole order. Missing entries are created first.
func (a *App) GetRoomScore(ctx context.Context, roomName string) (*models.RoomScore, error) {
	room, err := a.repo.GetRoomByName(ctx, rooms.NormalizeRoomName(roomName))
	if err != nil {
		return nil, err
	}

	created, err := a.repo.CreateMissingUserScores(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	if created > 0 {
		log.Debug().Str("room", room.Name).Int64("created", created).Msg("created missing user scores")
	}

	holes, err := a.repo.ListHoles(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	members, err := a.repo.ListRoomMembers(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	entries, err := a.repo.ListUserScores(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	byKey := make(map[scoreKey]models.UserScore, len(entries))
	for _, e := range entries {
		byKey[scoreKey{userID: e.UserID, holeID: e.HoleID}] = e
	}

	players := make([]models.PlayerScores, 0, len(members))
	for _, m := range members {
		player := models.PlayerScores{
			ID:     m.ID,
			Name:   m.Name,
			Scores: make([]models.UserScore, 0, len(holes)),
		}
		for _, h := range holes {
			if e, ok := byKey[scoreKey{userID: m.ID, holeID: h.ID}]; ok {
				player.Scores = append(player.Scores, e)
			}
		}
		players = append(players, player)
	}

	if err := a.repo.TouchRoom(ctx, room.ID); err != nil {
		return nil, err
	}

	return &models.RoomScore{Holes: holes, Players: players}, nil
}

// UpdatePlayerScore overwrites the value of a score record. nil clears it.
func (a *App) UpdatePlayerScore(ctx context.Context, userScoreID uuid.UUID, newScore *int) (*models.UserScore, error) {
	score, err := a.repo.UpdateUserScore(ctx, userScoreID, newScore)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("user_score_id", score.ID.String()).
		Str("user_id", score.UserID.String()).
		Msg("updated player score")
	return score, nil
}

// ValidateUserIDOwnsUserScore returns ErrUserScoreNotFound or ErrUserScoreNotOwned unless
// the score record belongs to userID
func (a *App) ValidateUserIDOwnsUserScore(ctx context.Context, userID, userScoreID uuid.UUID) error {
	score, err := a.repo.GetUserScore(ctx, userScoreID)
	if err != nil {
		return err
	}
	if score.UserID != userID {
		return ErrUserScoreNotOwned
	}
	return nil
}

// CreateNewHole appends a hole to a room. Hole numbers are not unique within a room.
func (a *App) CreateNewHole(ctx context.Context, req CreateHoleRequest) (*models.Hole, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	hole, err := a.repo.CreateHole(ctx, req.RoomID, req.Number, req.Par)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("room_id", hole.RoomID.String()).
		Int("number", hole.Number).
		Msg("created hole")
	return hole, nil
}
