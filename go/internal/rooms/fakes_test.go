package rooms

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/minigolf/go/internal/models"
	"github.com/mcdev12/minigolf/go/internal/users"
)

// memoryRepo is an in-memory RoomsRepository with the same create-if-absent semantics as the SQL
type memoryRepo struct {
	mu      sync.Mutex
	rooms   map[string]*models.Room
	members map[uuid.UUID][]models.User
	users   map[uuid.UUID]models.User
	creates int
	err     error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		rooms:   make(map[string]*models.Room),
		members: make(map[uuid.UUID][]models.User),
		users:   make(map[uuid.UUID]models.User),
	}
}

func (m *memoryRepo) CreateRoom(_ context.Context, name string) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if _, ok := m.rooms[name]; ok {
		return nil, ErrRoomExists
	}
	return m.insertLocked(name), nil
}

func (m *memoryRepo) insertLocked(name string) *models.Room {
	now := time.Now()
	room := &models.Room{ID: uuid.New(), Name: name, LastAccessed: now, CreatedAt: now}
	m.rooms[name] = room
	m.creates++
	return room
}

func (m *memoryRepo) GetRoom(_ context.Context, id uuid.UUID) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, ErrRoomNotFound
}

func (m *memoryRepo) GetRoomByName(_ context.Context, name string) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[name]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

func (m *memoryRepo) RoomExists(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rooms[name]
	return ok, nil
}

func (m *memoryRepo) JoinRoom(_ context.Context, roomName string, userID uuid.UUID) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	room, ok := m.rooms[roomName]
	if !ok {
		room = m.insertLocked(roomName)
	}
	room.LastAccessed = time.Now()
	for _, u := range m.members[room.ID] {
		if u.ID == userID {
			return room, nil
		}
	}
	m.members[room.ID] = append(m.members[room.ID], m.users[userID])
	return room, nil
}

func (m *memoryRepo) GetRoomMemberByName(_ context.Context, roomID uuid.UUID, name string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.members[roomID] {
		if u.Name == name {
			u := u
			return &u, nil
		}
	}
	return nil, ErrUserNotInRoom
}

func (m *memoryRepo) ListRoomMembers(_ context.Context, roomID uuid.UUID) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.User(nil), m.members[roomID]...), nil
}

func (m *memoryRepo) DeleteRoomsAccessedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for name, r := range m.rooms {
		if !r.LastAccessed.After(cutoff) {
			delete(m.rooms, name)
			n++
		}
	}
	return n, nil
}

// fakeUsers hands out one stable user per name and shares it with the repo
type fakeUsers struct {
	mu    sync.Mutex
	repo  *memoryRepo
	names map[string]models.User
	err   error
}

func newFakeUsers(repo *memoryRepo) *fakeUsers {
	return &fakeUsers{repo: repo, names: make(map[string]models.User)}
}

func (f *fakeUsers) GetOrCreateUser(_ context.Context, req users.GetOrCreateUserRequest) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.names[req.Name]
	if !ok {
		u = models.User{ID: uuid.New(), Name: req.Name}
		f.names[req.Name] = u
	}
	f.repo.mu.Lock()
	f.repo.users[u.ID] = u
	f.repo.mu.Unlock()
	return &u, nil
}

// sequenceNames returns the queued names in order, then repeats the last one
type sequenceNames struct {
	mu    sync.Mutex
	names []string
	calls int
}

func (s *sequenceNames) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.names) {
		i = len(s.names) - 1
	}
	s.calls++
	return s.names[i]
}
