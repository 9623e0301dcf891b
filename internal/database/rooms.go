package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"github.com/staybnb-project/backend/internal/database/models"
	"github.com/staybnb-project/backend/internal/listing"
)

type RoomStore struct {
	DB *bun.DB
}

var _ listing.Store = (*RoomStore)(nil)

func NewRoomStore(db *bun.DB) *RoomStore {
	return &RoomStore{DB: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func applyRoomFilter(q *bun.SelectQuery, f listing.RoomFilter) *bun.SelectQuery {
	if f.UserID != "" {
		q = q.Where("r.user_id = ?", f.UserID)
	}
	if f.TitleContains != "" {
		q = q.Where("r.title LIKE ?", containsPattern(f.TitleContains))
	}
	if f.AddressContains != "" {
		q = q.Where("r.address LIKE ?", containsPattern(f.AddressContains))
	}
	if f.Category != "" {
		q = q.Where("r.category = ?", f.Category)
	}
	return q
}

// FindRoom loads a room with its comments, and with the likes of likesBy
// when it is not empty.
func (s *RoomStore) FindRoom(ctx context.Context, id int64, likesBy string) (room *models.Room, err error) {
	room = new(models.Room)

	q := s.DB.NewSelect().
		Model(room).
		Relation("Comments", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("c.created_at ASC", "c.id ASC")
		}).
		Where("r.id = ?", id)

	if likesBy != "" {
		q = q.Relation("Likes", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("lk.user_id = ?", likesBy)
		})
	}

	if err = q.Scan(ctx); err != nil {
		room = nil
	}
	return
}

func (s *RoomStore) CountRooms(ctx context.Context, filter listing.RoomFilter) (int, error) {
	return applyRoomFilter(s.DB.NewSelect().Model((*models.Room)(nil)), filter).Count(ctx)
}

func (s *RoomStore) ListRooms(ctx context.Context, filter listing.RoomFilter, offset, limit int) (rooms []*models.Room, err error) {
	rooms = make([]*models.Room, 0, limit)
	err = applyRoomFilter(s.DB.NewSelect().Model(&rooms), filter).
		Order("r.created_at DESC", "r.id DESC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	return
}

func (s *RoomStore) AllRooms(ctx context.Context) (rooms []*models.Room, err error) {
	rooms = make([]*models.Room, 0)
	err = s.DB.NewSelect().
		Model(&rooms).
		Order("r.id ASC").
		Scan(ctx)
	return
}

func (s *RoomStore) InsertRoom(ctx context.Context, room *models.Room) (err error) {
	_, err = s.DB.NewInsert().
		Model(room).
		Returning("*").
		Exec(ctx)
	return
}

// UpdateRoom writes columns of the row matching both room.ID and room.UserID
// and reloads the full row into room.
func (s *RoomStore) UpdateRoom(ctx context.Context, room *models.Room, columns []string) (err error) {
	res, err := s.DB.NewUpdate().
		Model(room).
		Column(columns...).
		Where("id = ?", room.ID).
		Where("user_id = ?", room.UserID).
		Returning("*").
		Exec(ctx)
	return noRowsIfUntouched(res, err)
}

func (s *RoomStore) DeleteRoom(ctx context.Context, id int64, userID string) (room *models.Room, err error) {
	room = new(models.Room)
	res, err := s.DB.NewDelete().
		Model(room).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Returning("*").
		Exec(ctx)
	if err = noRowsIfUntouched(res, err); err != nil {
		room = nil
	}
	return
}

func noRowsIfUntouched(res sql.Result, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sql.ErrNoRows
	} else if err != nil {
		return err
	}

	if n, rerr := res.RowsAffected(); rerr == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
