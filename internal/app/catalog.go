package app

import (
	"context"
	"fmt"
	"time"

	"hotelbooking/internal/domain"
)

// CatalogService serves the read-only hotel catalog through a
// read-through cache. Catalog rows change only at seed time, so a plain
// TTL is enough.
type CatalogService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCatalogService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *CatalogService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	key := fmt.Sprintf("hotel:%d", id)
	var h domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &h); ok {
		return h, nil
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.Hotel{}, domain.NotFound("invalid hotel id")
		}
		return domain.Hotel{}, err
	}
	_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	return h, nil
}

func (s *CatalogService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	const key = "hotels:all"
	var hs []domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &hs); ok {
		return hs, nil
	}
	hs, err := s.repo.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, hs, int(s.cacheTTL.Seconds()))
	return hs, nil
}
