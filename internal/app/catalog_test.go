package app_test

import (
	"context"
	"testing"
	"time"

	"hotelbooking/internal/app"
	"hotelbooking/internal/domain"
)

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Hotel:
		*d = v.(domain.Hotel)
	case *[]domain.Hotel:
		*d = v.([]domain.Hotel)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error { return nil }

func TestGetHotel_CacheMissThenHit(t *testing.T) {
	repo := &fakeCatalogRepo{
		hotels: map[int64]domain.Hotel{42: {ID: 42, Name: "Grand Meridian", Stars: 5}},
	}
	cache := &fakeCache{}
	svc := app.NewCatalogService(repo, cache, 10*time.Minute)

	// miss populates the cache
	h, err := svc.GetHotel(context.Background(), 42)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.Name != "Grand Meridian" {
		t.Fatalf("unexpected hotel: %+v", h)
	}

	// mutate repo to prove the second read is served from cache
	repo.hotels[42] = domain.Hotel{ID: 42, Name: "SHOULD NOT SEE THIS"}

	h2, err := svc.GetHotel(context.Background(), 42)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h2.Name != "Grand Meridian" {
		t.Fatalf("expected cached name, got %s", h2.Name)
	}
}

func TestGetHotel_Unknown(t *testing.T) {
	svc := app.NewCatalogService(&fakeCatalogRepo{hotels: map[int64]domain.Hotel{}}, &fakeCache{}, time.Minute)

	_, err := svc.GetHotel(context.Background(), 404)
	if domain.KindOf(err) != domain.KindNotFound || err.Error() != "invalid hotel id" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListHotels_Cache(t *testing.T) {
	repo := &fakeCatalogRepo{
		hotels: map[int64]domain.Hotel{1: {ID: 1, Name: "Harbor View", Stars: 4}},
	}
	cache := &fakeCache{}
	svc := app.NewCatalogService(repo, cache, 10*time.Minute)

	hs, err := svc.ListHotels(context.Background())
	if err != nil || len(hs) != 1 {
		t.Fatalf("unexpected list: %v (err %v)", hs, err)
	}

	repo.hotels[2] = domain.Hotel{ID: 2, Name: "Late Arrival"}
	hs2, err := svc.ListHotels(context.Background())
	if err != nil || len(hs2) != 1 {
		t.Fatalf("expected cached single-element list, got %d (err %v)", len(hs2), err)
	}
}
