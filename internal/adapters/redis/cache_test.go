package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "hotelbooking/internal/adapters/redis"
	"hotelbooking/internal/domain"
)

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var out domain.Hotel
	ok, err := c.Get(ctx, "hotel:1", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected miss on empty cache")
	}

	in := domain.Hotel{ID: 1, Name: "Seaside", Location: "Lisbon", Stars: 4}
	if err := c.Set(ctx, "hotel:1", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	ok, err = c.Get(ctx, "hotel:1", &out)
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if out.Name != "Seaside" || out.Stars != 4 {
		t.Fatalf("unexpected cached hotel: %+v", out)
	}

	if err := c.Del(ctx, "hotel:1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _ = c.Get(ctx, "hotel:1", &out)
	if ok {
		t.Fatal("expected miss after delete")
	}
}
