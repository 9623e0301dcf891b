package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:c"`

	ID        int64     `bun:",pk,autoincrement" json:"id"`
	RoomID    int64     `bun:",notnull" json:"roomId"`
	UserID    string    `bun:",notnull" json:"userId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
