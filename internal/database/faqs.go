package database

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/staybnb-project/backend/internal/database/models"
)

type FaqStore struct {
	DB *bun.DB
}

func NewFaqStore(db *bun.DB) *FaqStore {
	return &FaqStore{DB: db}
}

func (s *FaqStore) ListFaqs(ctx context.Context) (faqs []*models.Faq, err error) {
	faqs = make([]*models.Faq, 0)
	err = s.DB.NewSelect().
		Model(&faqs).
		Order("f.id ASC").
		Scan(ctx)
	return
}
