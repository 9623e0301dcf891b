// Package faq serves the FAQ collection, optionally through a read-through cache.
package faq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/staybnb-project/backend/internal/cache"
	"github.com/staybnb-project/backend/internal/database/models"
)

const cacheKey = "staybnb:faqs"

type Store interface {
	ListFaqs(ctx context.Context) ([]*models.Faq, error)
}

type Service struct {
	store Store
	kv    cache.KV
	ttl   time.Duration
}

// NewService returns a FAQ service. A nil kv or a non-positive ttl disables
// caching.
func NewService(store Store, kv cache.KV, ttl time.Duration) *Service {
	if ttl <= 0 {
		kv = nil
	}
	return &Service{
		store: store,
		kv:    kv,
		ttl:   ttl,
	}
}

// List returns every FAQ entry. Cache failures are logged and fall through
// to the store.
func (s *Service) List(ctx context.Context) (faqs []*models.Faq, err error) {
	if s.kv != nil {
		if faqs, err = s.cached(ctx); err == nil {
			return
		} else if !errors.Is(err, cache.ErrMiss) {
			zap.L().Warn("faq cache read failed", zap.Error(err))
		}
	}

	if faqs, err = s.store.ListFaqs(ctx); err != nil {
		err = fmt.Errorf("list faqs: %w", err)
		return
	}

	if s.kv != nil {
		if encoded, merr := json.Marshal(faqs); merr == nil {
			if serr := s.kv.Set(ctx, cacheKey, string(encoded), s.ttl); serr != nil {
				zap.L().Warn("faq cache write failed", zap.Error(serr))
			}
		}
	}
	return
}

func (s *Service) cached(ctx context.Context) (faqs []*models.Faq, err error) {
	var raw string
	if raw, err = s.kv.Get(ctx, cacheKey); err != nil {
		return
	}
	err = json.Unmarshal([]byte(raw), &faqs)
	return
}
