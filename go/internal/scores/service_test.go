package scores

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/minigolf/go/internal/httputil"
	"github.com/mcdev12/minigolf/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	store *memoryStore
	app   *App
	srv   *httptest.Server
	room  *models.Room
	sam   models.User
	john  models.User
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	store := newMemoryStore()
	app := NewApp(store)
	mux := http.NewServeMux()
	NewService(app, store).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	room := store.addRoom("brave-orange-kettle")
	return &serviceFixture{
		store: store,
		app:   app,
		srv:   srv,
		room:  room,
		sam:   store.addMember(room.ID, "Sam"),
		john:  store.addMember(room.ID, "John"),
	}
}

func (f *serviceFixture) post(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	resp, err := http.Post(f.srv.URL+path, "application/json", &buf)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestService_CreateHole(t *testing.T) {
	f := newServiceFixture(t)

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{
			name:       "created",
			body:       CreateHoleBody{RoomID: f.room.ID, HoleNumber: 1, Username: "Sam", Par: intPtr(3)},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing hole number",
			body:       map[string]any{"roomId": f.room.ID, "username": "Sam"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed room id",
			body:       map[string]any{"roomId": "not-a-uuid", "holeNumber": 1, "username": "Sam"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "user not in room",
			body:       CreateHoleBody{RoomID: f.room.ID, HoleNumber: 1, Username: "Mallory"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown room",
			body:       CreateHoleBody{RoomID: uuid.New(), HoleNumber: 1, Username: "Sam"},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.post(t, "/create-hole", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	holes, err := f.store.ListHoles(t.Context(), f.room.ID)
	require.NoError(t, err)
	require.Len(t, holes, 1)
	assert.NotNil(t, f.store.scoreFor(f.john.ID, holes[0].ID))
}

func TestService_CreateHoleStorageError(t *testing.T) {
	f := newServiceFixture(t)
	f.store.err = errors.New("db down")

	resp := f.post(t, "/create-hole", CreateHoleBody{RoomID: f.room.ID, HoleNumber: 1, Username: "Sam"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body := decode[httputil.ErrorBody](t, resp)
	assert.Contains(t, body.Error, "db down")
}

func TestService_RoomScore(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.app.CreateNewHole(t.Context(), CreateHoleRequest{RoomID: f.room.ID, Number: 1})
	require.NoError(t, err)

	t.Run("scorecard", func(t *testing.T) {
		resp := f.post(t, "/room-score/"+f.room.Name, RoomScoreBody{Username: "Sam"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		scorecard := decode[models.RoomScore](t, resp)
		require.Len(t, scorecard.Holes, 1)
		require.Len(t, scorecard.Players, 2)
		for _, p := range scorecard.Players {
			require.Len(t, p.Scores, 1)
			assert.Nil(t, p.Scores[0].Score)
		}
	})

	t.Run("missing username", func(t *testing.T) {
		resp := f.post(t, "/room-score/"+f.room.Name, map[string]string{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decode[httputil.ErrorBody](t, resp)
		assert.Equal(t, []string{"username is required"}, body.Messages)
	})

	t.Run("user not in room", func(t *testing.T) {
		resp := f.post(t, "/room-score/"+f.room.Name, RoomScoreBody{Username: "Mallory"})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("room absent", func(t *testing.T) {
		resp := f.post(t, "/room-score/no-such-room", RoomScoreBody{Username: "Sam"})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestService_UpdateScore(t *testing.T) {
	f := newServiceFixture(t)
	hole, err := f.app.CreateNewHole(t.Context(), CreateHoleRequest{RoomID: f.room.ID, Number: 1})
	require.NoError(t, err)
	samScore := f.store.scoreFor(f.sam.ID, hole.ID)
	require.NotNil(t, samScore)

	t.Run("owner updates own score", func(t *testing.T) {
		resp := f.post(t, "/update-score", UpdateScoreBody{
			RoomID: f.room.ID, Username: "Sam", UserScoreID: samScore.ID, Score: intPtr(4),
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		updated := decode[models.UserScore](t, resp)
		require.NotNil(t, updated.Score)
		assert.Equal(t, 4, *updated.Score)
	})

	t.Run("other member cannot update", func(t *testing.T) {
		resp := f.post(t, "/update-score", UpdateScoreBody{
			RoomID: f.room.ID, Username: "John", UserScoreID: samScore.ID, Score: intPtr(9),
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, 4, *f.store.scoreFor(f.sam.ID, hole.ID).Score)
	})

	t.Run("non member cannot update", func(t *testing.T) {
		resp := f.post(t, "/update-score", UpdateScoreBody{
			RoomID: f.room.ID, Username: "Mallory", UserScoreID: samScore.ID, Score: intPtr(1),
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown score", func(t *testing.T) {
		resp := f.post(t, "/update-score", UpdateScoreBody{
			RoomID: f.room.ID, Username: "Sam", UserScoreID: uuid.New(), Score: intPtr(1),
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("missing score id", func(t *testing.T) {
		resp := f.post(t, "/update-score", map[string]any{"roomId": f.room.ID, "username": "Sam", "score": 2})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
