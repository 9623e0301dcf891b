package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Like struct {
	bun.BaseModel `bun:"table:likes,alias:lk"`

	ID        int64     `bun:",pk,autoincrement" json:"id"`
	RoomID    int64     `bun:",notnull" json:"roomId"`
	UserID    string    `bun:",notnull" json:"userId"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
