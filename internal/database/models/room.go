package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Room struct {
	bun.BaseModel `bun:"table:rooms,alias:r"`

	ID          int64    `bun:",pk,autoincrement" json:"id"`
	UserID      string   `bun:",notnull" json:"userId"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Desc        string   `bun:"description" json:"desc"`
	BedroomDesc string   `json:"bedroomDesc"`
	Address     string   `json:"address"`
	Price       int      `json:"price"`
	Lat         string   `json:"lat"`
	Lng         string   `json:"lng"`
	Images      []string `bun:",array" json:"images"`
	ImageKeys   []string `bun:",array" json:"imageKeys"`

	FreeCancel        bool `json:"freeCancel"`
	SelfCheckIn       bool `json:"selfCheckIn"`
	OfficeSpace       bool `json:"officeSpace"`
	HasMountainView   bool `json:"hasMountainView"`
	HasShampoo        bool `json:"hasShampoo"`
	HasFreeLaundry    bool `json:"hasFreeLaundry"`
	HasAirConditioner bool `json:"hasAirConditioner"`
	HasWifi           bool `json:"hasWifi"`
	HasBarbeque       bool `json:"hasBarbeque"`
	HasFreeParking    bool `json:"hasFreeParking"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`

	Likes    []*Like    `bun:"rel:has-many,join:id=room_id" json:"likes,omitempty"`
	Comments []*Comment `bun:"rel:has-many,join:id=room_id" json:"comments,omitempty"`
}
