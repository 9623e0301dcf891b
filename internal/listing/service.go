package listing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/staybnb-project/backend/internal/database/models"
	"github.com/staybnb-project/backend/internal/geocode"
)

// Store is the persistence the service runs against. Lookups and mutations
// of a missing row return sql.ErrNoRows.
type Store interface {
	FindRoom(ctx context.Context, id int64, likesBy string) (*models.Room, error)
	CountRooms(ctx context.Context, filter RoomFilter) (int, error)
	ListRooms(ctx context.Context, filter RoomFilter, offset, limit int) ([]*models.Room, error)
	AllRooms(ctx context.Context) ([]*models.Room, error)
	InsertRoom(ctx context.Context, room *models.Room) error
	UpdateRoom(ctx context.Context, room *models.Room, columns []string) error
	DeleteRoom(ctx context.Context, id int64, userID string) (*models.Room, error)
}

// RoomFilter narrows a room listing. Empty fields do not filter.
type RoomFilter struct {
	UserID          string
	TitleContains   string
	AddressContains string
	Category        string
}

// Caller is the identity resolved from the session; the zero value is anonymous.
type Caller struct {
	UserID string
}

func (c Caller) Authenticated() bool {
	return c.UserID != ""
}

// RoomDetail is a single room with the caller's likes and all comments.
type RoomDetail struct {
	*models.Room
	Likes    []*models.Like    `json:"likes"`
	Comments []*models.Comment `json:"comments"`
}

type Service struct {
	store    Store
	geocoder geocode.Geocoder
	opts     ReadOptions
}

func NewService(store Store, geocoder geocode.Geocoder, opts ReadOptions) *Service {
	return &Service{
		store:    store,
		geocoder: geocoder,
		opts:     opts,
	}
}

func (s *Service) ParseReadRequest(query url.Values) (ReadRequest, error) {
	return ParseReadRequest(query, s.opts)
}

// Get serves one of the four read modes. The result is a *RoomDetail,
// a *PageResult or a []*models.Room.
func (s *Service) Get(ctx context.Context, caller Caller, req ReadRequest) (result interface{}, err error) {
	switch r := req.(type) {
	case DetailRequest:
		return s.detail(ctx, caller, r)
	case OwnerListRequest:
		if !caller.Authenticated() {
			err = unauthorized()
			return
		}
		return s.page(ctx, r.Page, RoomFilter{
			UserID:        caller.UserID,
			TitleContains: r.Title,
		})
	case PublicListRequest:
		return s.page(ctx, r.Page, RoomFilter{
			AddressContains: r.Location,
			Category:        r.Category,
		})
	case AllRowsRequest:
		var rooms []*models.Room
		if rooms, err = s.store.AllRooms(ctx); err != nil {
			err = internal(fmt.Errorf("list all rooms: %w", err))
			return
		}
		result = nonNil(rooms)
		return
	default:
		err = internal(fmt.Errorf("unhandled read request %T", req))
		return
	}
}

func (s *Service) detail(ctx context.Context, caller Caller, r DetailRequest) (detail *RoomDetail, err error) {
	var room *models.Room
	room, err = s.store.FindRoom(ctx, r.ID, caller.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		err = notFound(err)
		return
	} else if err != nil {
		err = internal(fmt.Errorf("find room %d: %w", r.ID, err))
		return
	}

	detail = &RoomDetail{
		Room:     room,
		Likes:    []*models.Like{},
		Comments: []*models.Comment{},
	}
	if caller.Authenticated() {
		for _, like := range room.Likes {
			if like.UserID == caller.UserID {
				detail.Likes = append(detail.Likes, like)
			}
		}
	}
	if room.Comments != nil {
		detail.Comments = room.Comments
	}
	return
}

func (s *Service) page(ctx context.Context, page Page, filter RoomFilter) (result *PageResult, err error) {
	var count int
	if count, err = s.store.CountRooms(ctx, filter); err != nil {
		err = internal(fmt.Errorf("count rooms: %w", err))
		return
	}

	var rooms []*models.Room
	if rooms, err = s.store.ListRooms(ctx, filter, page.Offset(), page.Limit); err != nil {
		err = internal(fmt.Errorf("list rooms: %w", err))
		return
	}

	result = &PageResult{
		Page:       page.Number,
		Data:       nonNil(rooms),
		TotalCount: count,
		TotalPage:  page.TotalPages(count),
	}
	return
}

func (s *Service) Create(ctx context.Context, caller Caller, input RoomInput) (room *models.Room, err error) {
	if !caller.Authenticated() {
		err = unauthorized()
		return
	}

	if verr := validate.Struct(input); verr != nil {
		err = validationError(verr)
		return
	}

	var price int
	if price, err = parsePrice(input.Price); err != nil {
		return
	}

	var lat, lng string
	if lat, lng, err = s.locate(ctx, input.Address); err != nil {
		return
	}

	room = input.toRoom()
	room.UserID = caller.UserID
	room.Price = price
	room.Lat = lat
	room.Lng = lng

	if err = s.store.InsertRoom(ctx, room); err != nil {
		room = nil
		err = internal(fmt.Errorf("insert room: %w", err))
	}
	return
}

// Update rewrites the caller's room. Only the payload keys listed in present
// are written, plus address, price and the server derived columns.
func (s *Service) Update(ctx context.Context, caller Caller, rawID string, input RoomInput, present []string) (room *models.Room, err error) {
	if !caller.Authenticated() {
		err = unauthorized()
		return
	}

	var id int64
	if id, err = ParseRoomID(rawID); err != nil {
		return
	}

	columns, fields := updateTargets(present)
	if verr := validate.StructPartial(input, fields...); verr != nil {
		err = validationError(verr)
		return
	}

	var price int
	if price, err = parsePrice(input.Price); err != nil {
		return
	}

	var lat, lng string
	if lat, lng, err = s.locate(ctx, input.Address); err != nil {
		return
	}

	room = input.toRoom()
	room.ID = id
	room.UserID = caller.UserID
	room.Price = price
	room.Lat = lat
	room.Lng = lng
	room.UpdatedAt = time.Now()

	err = s.store.UpdateRoom(ctx, room, columns)
	if errors.Is(err, sql.ErrNoRows) {
		room = nil
		err = notFound(err)
	} else if err != nil {
		room = nil
		err = internal(fmt.Errorf("update room %d: %w", id, err))
	}
	return
}

func (s *Service) Delete(ctx context.Context, caller Caller, rawID string) (room *models.Room, err error) {
	if !caller.Authenticated() {
		err = unauthorized()
		return
	}

	var id int64
	if id, err = ParseRoomID(rawID); err != nil {
		return
	}

	room, err = s.store.DeleteRoom(ctx, id, caller.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		room = nil
		err = notFound(err)
	} else if err != nil {
		room = nil
		err = internal(fmt.Errorf("delete room %d: %w", id, err))
	}
	return
}

// locate returns the coordinates of the first geocoding candidate.
func (s *Service) locate(ctx context.Context, address string) (lat, lng string, err error) {
	candidates, err := s.geocoder.Lookup(ctx, address)
	if err != nil {
		err = internal(fmt.Errorf("geocode address: %w", err))
		return
	}
	if len(candidates) == 0 {
		err = invalidInput("No location data found", nil)
		return
	}

	lat, lng = candidates[0].Y, candidates[0].X
	return
}

func nonNil(rooms []*models.Room) []*models.Room {
	if rooms == nil {
		return []*models.Room{}
	}
	return rooms
}
