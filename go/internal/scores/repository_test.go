package scores

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/minigolf/go/internal/db"
	"github.com/mcdev12/minigolf/go/internal/rooms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuerier struct {
	holes  []db.Hole
	scores map[uuid.UUID]db.UserScore
	err    error
}

func (s *stubQuerier) GetRoomByName(_ context.Context, name string) (db.Room, error) {
	if s.err != nil {
		return db.Room{}, s.err
	}
	return db.Room{ID: uuid.New(), Name: name}, nil
}

func (s *stubQuerier) TouchRoom(context.Context, uuid.UUID) error { return s.err }

func (s *stubQuerier) ListRoomMembers(context.Context, uuid.UUID) ([]db.User, error) {
	return nil, s.err
}

func (s *stubQuerier) ListHolesByRoom(context.Context, uuid.UUID) ([]db.Hole, error) {
	return s.holes, s.err
}

func (s *stubQuerier) CreateMissingUserScores(context.Context, uuid.UUID) (int64, error) {
	return 0, s.err
}

func (s *stubQuerier) ListUserScoresByRoom(context.Context, uuid.UUID) ([]db.UserScore, error) {
	var out []db.UserScore
	for _, v := range s.scores {
		out = append(out, v)
	}
	return out, s.err
}

func (s *stubQuerier) GetUserScore(_ context.Context, id uuid.UUID) (db.UserScore, error) {
	v, ok := s.scores[id]
	if !ok {
		return db.UserScore{}, sql.ErrNoRows
	}
	return v, nil
}

func (s *stubQuerier) UpdateUserScore(_ context.Context, arg db.UpdateUserScoreParams) (db.UserScore, error) {
	v, ok := s.scores[arg.ID]
	if !ok {
		return db.UserScore{}, sql.ErrNoRows
	}
	v.Score = arg.Score
	s.scores[arg.ID] = v
	return v, nil
}

func TestRepository_Conversions(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	scoreID := uuid.New()
	q := &stubQuerier{
		holes: []db.Hole{
			{ID: uuid.New(), RoomID: roomID, Number: 1, Par: sql.NullInt32{Int32: 3, Valid: true}, CreatedAt: time.Now()},
			{ID: uuid.New(), RoomID: roomID, Number: 2},
		},
		scores: map[uuid.UUID]db.UserScore{scoreID: {ID: scoreID, UserID: uuid.New(), HoleID: uuid.New()}},
	}
	repo := NewRepository(nil, q)

	holes, err := repo.ListHoles(ctx, roomID)
	require.NoError(t, err)
	require.Len(t, holes, 2)
	require.NotNil(t, holes[0].Par)
	assert.Equal(t, 3, *holes[0].Par)
	assert.Nil(t, holes[1].Par)

	got, err := repo.GetUserScore(ctx, scoreID)
	require.NoError(t, err)
	assert.Nil(t, got.Score)

	updated, err := repo.UpdateUserScore(ctx, scoreID, intPtr(5))
	require.NoError(t, err)
	require.NotNil(t, updated.Score)
	assert.Equal(t, 5, *updated.Score)
	assert.Equal(t, sql.NullInt32{Int32: 5, Valid: true}, q.scores[scoreID].Score)
}

func TestRepository_NotFoundMapping(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(nil, &stubQuerier{scores: map[uuid.UUID]db.UserScore{}})

	_, err := repo.GetUserScore(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserScoreNotFound)

	_, err = repo.UpdateUserScore(ctx, uuid.New(), intPtr(1))
	assert.ErrorIs(t, err, ErrUserScoreNotFound)

	repo = NewRepository(nil, &stubQuerier{err: sql.ErrNoRows})
	_, err = repo.GetRoomByName(ctx, "a-b-c")
	assert.ErrorIs(t, err, rooms.ErrRoomNotFound)
}
