package controllers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/staybnb-project/backend/internal/database/models"
	"github.com/staybnb-project/backend/internal/geocode"
	"github.com/staybnb-project/backend/internal/listing"
	"github.com/staybnb-project/backend/internal/router"
	"github.com/staybnb-project/backend/internal/session"
)

// roomStore keeps rooms newest first.
type roomStore struct {
	rooms  []*models.Room
	nextID int64
	err    error
}

func (s *roomStore) FindRoom(ctx context.Context, id int64, likesBy string) (*models.Room, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, room := range s.rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *roomStore) filtered(filter listing.RoomFilter) (out []*models.Room) {
	for _, room := range s.rooms {
		if filter.UserID != "" && room.UserID != filter.UserID {
			continue
		}
		if filter.TitleContains != "" && !strings.Contains(room.Title, filter.TitleContains) {
			continue
		}
		if filter.AddressContains != "" && !strings.Contains(room.Address, filter.AddressContains) {
			continue
		}
		if filter.Category != "" && room.Category != filter.Category {
			continue
		}
		out = append(out, room)
	}
	return
}

func (s *roomStore) CountRooms(ctx context.Context, filter listing.RoomFilter) (int, error) {
	return len(s.filtered(filter)), s.err
}

func (s *roomStore) ListRooms(ctx context.Context, filter listing.RoomFilter, offset, limit int) ([]*models.Room, error) {
	if s.err != nil {
		return nil, s.err
	}
	rooms := s.filtered(filter)
	if offset >= len(rooms) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rooms) {
		end = len(rooms)
	}
	return rooms[offset:end], nil
}

func (s *roomStore) AllRooms(ctx context.Context) ([]*models.Room, error) {
	return s.rooms, s.err
}

func (s *roomStore) InsertRoom(ctx context.Context, room *models.Room) error {
	if s.err != nil {
		return s.err
	}
	s.nextID++
	room.ID = s.nextID
	s.rooms = append([]*models.Room{room}, s.rooms...)
	return nil
}

func (s *roomStore) UpdateRoom(ctx context.Context, room *models.Room, columns []string) error {
	for i, existing := range s.rooms {
		if existing.ID == room.ID && existing.UserID == room.UserID {
			s.rooms[i] = room
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *roomStore) DeleteRoom(ctx context.Context, id int64, userID string) (*models.Room, error) {
	for i, existing := range s.rooms {
		if existing.ID == id && existing.UserID == userID {
			s.rooms = append(s.rooms[:i], s.rooms[i+1:]...)
			return existing, nil
		}
	}
	return nil, sql.ErrNoRows
}

type fixedGeocoder struct {
	candidates []geocode.Candidate
}

func (g fixedGeocoder) Lookup(ctx context.Context, address string) ([]geocode.Candidate, error) {
	return g.candidates, nil
}

var errBoom = errors.New("boom")

type testServer struct {
	store  *roomStore
	signer *session.Signer
	router *mux.Router
}

func newTestServer(t *testing.T, controllers ...router.Controller) *testServer {
	t.Helper()

	secret, public := session.GenerateKeys()
	signer, err := session.NewSignerFromBase64(secret)
	require.NoError(t, err)
	resolver, err := session.NewResolverFromBase64(public)
	require.NoError(t, err)

	store := &roomStore{}
	svc := listing.NewService(store, fixedGeocoder{
		candidates: []geocode.Candidate{{AddressName: "서울 중구 세종대로 110", X: "126.97", Y: "37.56"}},
	}, listing.ReadOptions{MaxLimit: 100, LegacyListAll: true})

	r := mux.NewRouter()
	r.Use(router.RequestID, resolver.Middleware)
	router.RegisterAll(r, append([]router.Controller{&RoomController{Service: svc}}, controllers...)...)

	return &testServer{store: store, signer: signer, router: r}
}

func (s *testServer) do(req *http.Request, uid string) *httptest.ResponseRecorder {
	if uid != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: s.signer.Sign(uid, time.Hour)})
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}
