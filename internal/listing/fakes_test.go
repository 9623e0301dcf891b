package listing

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/staybnb-project/backend/internal/database/models"
	"github.com/staybnb-project/backend/internal/geocode"
)

type memoryStore struct {
	mu     sync.Mutex
	nextID int64
	rooms  map[int64]*models.Room
	likes  []*models.Like
	calls  int
	err    error
}

var _ Store = (*memoryStore)(nil)

func newMemoryStore() *memoryStore {
	return &memoryStore{
		nextID: 1,
		rooms:  make(map[int64]*models.Room),
	}
}

// seed inserts n rooms owned by owner, each one second newer than the last.
func (m *memoryStore) seed(owner string, n int, mutate func(i int, r *models.Room)) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		r := &models.Room{
			UserID:    owner,
			Title:     "room",
			Category:  "호텔",
			Address:   "서울",
			CreatedAt: base.Add(time.Duration(len(m.rooms)) * time.Second),
		}
		if mutate != nil {
			mutate(i, r)
		}
		r.ID = m.nextID
		m.nextID++
		m.rooms[r.ID] = r
	}
}

func (m *memoryStore) enter() error {
	m.calls++
	return m.err
}

func (m *memoryStore) FindRoom(ctx context.Context, id int64, likesBy string) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}

	r, ok := m.rooms[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *r
	cp.Likes = nil
	for _, l := range m.likes {
		if l.RoomID == id && likesBy != "" && l.UserID == likesBy {
			cp.Likes = append(cp.Likes, l)
		}
	}
	return &cp, nil
}

func (m *memoryStore) filtered(f RoomFilter) []*models.Room {
	var out []*models.Room
	for _, r := range m.rooms {
		if f.UserID != "" && r.UserID != f.UserID {
			continue
		}
		if f.TitleContains != "" && !strings.Contains(r.Title, f.TitleContains) {
			continue
		}
		if f.AddressContains != "" && !strings.Contains(r.Address, f.AddressContains) {
			continue
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (m *memoryStore) CountRooms(ctx context.Context, f RoomFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return 0, err
	}
	return len(m.filtered(f)), nil
}

func (m *memoryStore) ListRooms(ctx context.Context, f RoomFilter, offset, limit int) ([]*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}

	rooms := m.filtered(f)
	if offset >= len(rooms) {
		return nil, nil
	}
	rooms = rooms[offset:]
	if len(rooms) > limit {
		rooms = rooms[:limit]
	}
	return rooms, nil
}

func (m *memoryStore) AllRooms(ctx context.Context) ([]*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}

	out := make([]*models.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) InsertRoom(ctx context.Context, room *models.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}

	room.ID = m.nextID
	m.nextID++
	room.CreatedAt = time.Now()
	cp := *room
	m.rooms[room.ID] = &cp
	return nil
}

func (m *memoryStore) UpdateRoom(ctx context.Context, room *models.Room, columns []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}

	existing, ok := m.rooms[room.ID]
	if !ok || existing.UserID != room.UserID {
		return sql.ErrNoRows
	}
	// the fake writes every column; column selection is covered by the store tests
	room.CreatedAt = existing.CreatedAt
	cp := *room
	m.rooms[room.ID] = &cp
	return nil
}

func (m *memoryStore) DeleteRoom(ctx context.Context, id int64, userID string) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}

	existing, ok := m.rooms[id]
	if !ok || existing.UserID != userID {
		return nil, sql.ErrNoRows
	}
	delete(m.rooms, id)
	return existing, nil
}

type stubGeocoder struct {
	candidates []geocode.Candidate
	err        error
	calls      int
	addresses  []string
}

func (g *stubGeocoder) Lookup(ctx context.Context, address string) ([]geocode.Candidate, error) {
	g.calls++
	g.addresses = append(g.addresses, address)
	return g.candidates, g.err
}

var errBoom = errors.New("boom")
