package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/staybnb-project/backend/internal/database/models"
	"github.com/staybnb-project/backend/internal/listing"
)

func setupMockDB(t *testing.T) (*bun.DB, sqlmock.Sqlmock) {
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%sea%", containsPattern("sea"))
	assert.Equal(t, `%50\%\_off\\%`, containsPattern(`50%_off\`))
}

func TestFindRoomNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewRoomStore(db)

	mock.ExpectQuery(`SELECT .* FROM "rooms" AS "r" WHERE .*r.id = 42`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	room, err := store.FindRoom(context.Background(), 42, "")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, room)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountAndListRooms(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewRoomStore(db)
	filter := listing.RoomFilter{UserID: "owner", TitleContains: "sea"}
	now := time.Now()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "rooms" AS "r" WHERE .*r.user_id = 'owner'.*r.title LIKE '%sea%'`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`SELECT .* FROM "rooms" AS "r" WHERE .*r.user_id = 'owner'.*ORDER BY r.created_at DESC, r.id DESC LIMIT 2 OFFSET 2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "created_at"}).
			AddRow(3, "owner", "sea side", now).
			AddRow(2, "owner", "sea view", now.Add(-time.Hour)))

	count, err := store.CountRooms(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	rooms, err := store.ListRooms(context.Background(), filter, 2, 2)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, int64(3), rooms[0].ID)
	assert.Equal(t, "sea view", rooms[1].Title)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoom(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewRoomStore(db)

	mock.ExpectQuery(`DELETE FROM "rooms" .*id = 9.*user_id = 'owner'.*RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`DELETE FROM "rooms" .*id = 1.*user_id = 'owner'.*RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title"}).AddRow(1, "owner", "bye"))

	room, err := store.DeleteRoom(context.Background(), 9, "owner")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, room)

	room, err = store.DeleteRoom(context.Background(), 1, "owner")
	require.NoError(t, err)
	assert.Equal(t, "bye", room.Title)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRoom(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewRoomStore(db)
	columns := []string{"title", "price"}

	mock.ExpectQuery(`UPDATE "rooms" AS "r" SET "title" = 'new', "price" = 5 WHERE .*id = 7.*user_id = 'intruder'.*RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`UPDATE "rooms" AS "r" SET "title" = 'new', "price" = 5 WHERE .*id = 7.*user_id = 'owner'.*RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "price", "description"}).
			AddRow(7, "owner", "new", 5, "kept"))

	err := store.UpdateRoom(context.Background(), &models.Room{ID: 7, UserID: "intruder", Title: "new", Price: 5, Desc: "ignored"}, columns)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	room := &models.Room{ID: 7, UserID: "owner", Title: "new", Price: 5, Desc: "ignored"}
	require.NoError(t, store.UpdateRoom(context.Background(), room, columns))
	assert.Equal(t, "kept", room.Desc)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRoomNoRowsAffected(t *testing.T) {
	assert.ErrorIs(t, noRowsIfUntouched(sqlmock.NewResult(0, 0), nil), sql.ErrNoRows)
	assert.NoError(t, noRowsIfUntouched(sqlmock.NewResult(0, 1), nil))
	assert.ErrorIs(t, noRowsIfUntouched(nil, sql.ErrNoRows), sql.ErrNoRows)
}

func TestListFaqs(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewFaqStore(db)

	mock.ExpectQuery(`SELECT .* FROM "faqs" AS "f" ORDER BY f.id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description"}).
			AddRow(1, "환불 규정", "체크인 3일 전까지 전액 환불됩니다."))

	faqs, err := store.ListFaqs(context.Background())
	require.NoError(t, err)
	require.Len(t, faqs, 1)
	assert.Equal(t, "체크인 3일 전까지 전액 환불됩니다.", faqs[0].Desc)

	require.NoError(t, mock.ExpectationsWereMet())
}
