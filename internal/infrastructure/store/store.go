package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/contract"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

const featuredReviewsKey = "reviews:featured"

// WorkshopCacheStore keeps workshop documents and the featured review list in Redis.
type WorkshopCacheStore struct {
	rdb         *redis.Client
	detailTTL   time.Duration
	featuredTTL time.Duration
}

var _ contract.IWorkshopCache = (*WorkshopCacheStore)(nil)

func NewWorkshopCacheStore(rdb *redis.Client) *WorkshopCacheStore {
	return &WorkshopCacheStore{
		rdb:         rdb,
		detailTTL:   10 * time.Minute,
		featuredTTL: 30 * time.Minute,
	}
}

func workshopKey(id string) string { return fmt.Sprintf("workshop:id:%s", id) }

func (c *WorkshopCacheStore) GetWorkshop(ctx context.Context, id string) (*entity.Workshop, bool, error) {
	var w entity.Workshop
	ok, err := c.getJSON(ctx, workshopKey(id), &w)
	if !ok || err != nil {
		return nil, false, err
	}
	return &w, true, nil
}

func (c *WorkshopCacheStore) SetWorkshop(ctx context.Context, w *entity.Workshop) error {
	return c.setJSON(ctx, workshopKey(w.ID), w, c.detailTTL)
}

func (c *WorkshopCacheStore) InvalidateWorkshop(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, workshopKey(id)).Err()
}

func (c *WorkshopCacheStore) GetFeaturedReviews(ctx context.Context) ([]*entity.Review, bool, error) {
	var reviews []*entity.Review
	ok, err := c.getJSON(ctx, featuredReviewsKey, &reviews)
	if !ok || err != nil {
		return nil, false, err
	}
	return reviews, true, nil
}

func (c *WorkshopCacheStore) SetFeaturedReviews(ctx context.Context, reviews []*entity.Review) error {
	return c.setJSON(ctx, featuredReviewsKey, reviews, c.featuredTTL)
}

func (c *WorkshopCacheStore) InvalidateFeaturedReviews(ctx context.Context) error {
	return c.rdb.Del(ctx, featuredReviewsKey).Err()
}

// getJSON treats an undecodable entry as a miss.
func (c *WorkshopCacheStore) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *WorkshopCacheStore) setJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}
