package scores

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/minigolf/go/internal/models"
	"github.com/mcdev12/minigolf/go/internal/rooms"
)

// memoryStore is an in-memory ScoresRepository and RoomsApp over one shared state
type memoryStore struct {
	mu      sync.Mutex
	rooms   map[string]*models.Room
	members map[uuid.UUID][]models.User
	holes   map[uuid.UUID][]models.Hole
	scores  map[uuid.UUID]*models.UserScore
	touched int
	err     error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		rooms:   make(map[string]*models.Room),
		members: make(map[uuid.UUID][]models.User),
		holes:   make(map[uuid.UUID][]models.Hole),
		scores:  make(map[uuid.UUID]*models.UserScore),
	}
}

func (m *memoryStore) addRoom(name string) *models.Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	room := &models.Room{ID: uuid.New(), Name: name, LastAccessed: time.Now(), CreatedAt: time.Now()}
	m.rooms[name] = room
	return room
}

func (m *memoryStore) addMember(roomID uuid.UUID, name string) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := models.User{ID: uuid.New(), Name: name}
	m.members[roomID] = append(m.members[roomID], u)
	return u
}

func (m *memoryStore) GetRoomByName(_ context.Context, name string) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.rooms[name]
	if !ok {
		return nil, rooms.ErrRoomNotFound
	}
	return r, nil
}

func (m *memoryStore) ValidateUserIsInRoom(_ context.Context, username string, roomID uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	found := false
	for _, r := range m.rooms {
		if r.ID == roomID {
			found = true
		}
	}
	if !found {
		return nil, rooms.ErrRoomNotFound
	}
	for _, u := range m.members[roomID] {
		if u.Name == username {
			u := u
			return &u, nil
		}
	}
	return nil, rooms.ErrUserNotInRoom
}

func (m *memoryStore) TouchRoom(_ context.Context, roomID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		if r.ID == roomID {
			r.LastAccessed = time.Now()
			m.touched++
		}
	}
	return nil
}

func (m *memoryStore) ListRoomMembers(_ context.Context, roomID uuid.UUID) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.User(nil), m.members[roomID]...), nil
}

func (m *memoryStore) ListHoles(_ context.Context, roomID uuid.UUID) ([]models.Hole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	holes := append([]models.Hole(nil), m.holes[roomID]...)
	// stable insertion sort by number keeps creation order for equal numbers
	for i := 1; i < len(holes); i++ {
		for j := i; j > 0 && holes[j].Number < holes[j-1].Number; j-- {
			holes[j], holes[j-1] = holes[j-1], holes[j]
		}
	}
	return holes, nil
}

func (m *memoryStore) CreateMissingUserScores(_ context.Context, roomID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createMissingLocked(roomID), nil
}

func (m *memoryStore) createMissingLocked(roomID uuid.UUID) int64 {
	var n int64
	for _, u := range m.members[roomID] {
		for _, h := range m.holes[roomID] {
			if m.findLocked(u.ID, h.ID) == nil {
				s := &models.UserScore{ID: uuid.New(), UserID: u.ID, HoleID: h.ID, LastAccessed: time.Now()}
				m.scores[s.ID] = s
				n++
			}
		}
	}
	return n
}

func (m *memoryStore) findLocked(userID, holeID uuid.UUID) *models.UserScore {
	for _, s := range m.scores {
		if s.UserID == userID && s.HoleID == holeID {
			return s
		}
	}
	return nil
}

func (m *memoryStore) ListUserScores(_ context.Context, roomID uuid.UUID) ([]models.UserScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inRoom := make(map[uuid.UUID]bool)
	for _, h := range m.holes[roomID] {
		inRoom[h.ID] = true
	}
	var out []models.UserScore
	for _, s := range m.scores {
		if inRoom[s.HoleID] {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memoryStore) GetUserScore(_ context.Context, id uuid.UUID) (*models.UserScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.scores[id]
	if !ok {
		return nil, ErrUserScoreNotFound
	}
	c := *s
	return &c, nil
}

func (m *memoryStore) UpdateUserScore(_ context.Context, id uuid.UUID, score *int) (*models.UserScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.scores[id]
	if !ok {
		return nil, ErrUserScoreNotFound
	}
	s.Score = score
	s.LastAccessed = time.Now()
	c := *s
	return &c, nil
}

func (m *memoryStore) CreateHole(_ context.Context, roomID uuid.UUID, number int, par *int) (*models.Hole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	h := models.Hole{ID: uuid.New(), RoomID: roomID, Number: number, Par: par, CreatedAt: time.Now()}
	m.holes[roomID] = append(m.holes[roomID], h)
	m.createMissingLocked(roomID)
	return &h, nil
}

// scoreFor returns the score record of user for hole
func (m *memoryStore) scoreFor(userID, holeID uuid.UUID) *models.UserScore {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findLocked(userID, holeID)
}

func intPtr(v int) *int { return &v }
