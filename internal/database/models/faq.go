package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Faq struct {
	bun.BaseModel `bun:"table:faqs,alias:f"`

	ID        int64     `bun:",pk,autoincrement" json:"id"`
	Title     string    `json:"title"`
	Desc      string    `bun:"description" json:"desc"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
