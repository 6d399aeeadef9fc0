package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"math/rand"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotelbooking/internal/adapters/observability"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/shared"
	mysqlrepo "hotelbooking/internal/storage/mysql"
)

// Seeds the hotel catalog from a JSON fixture. Catalog rows are written
// once here and only read afterwards.

type seedRoom struct {
	Type      string   `json:"type"`
	Price     float64  `json:"price"`
	MaxGuests int      `json:"max_guests"`
	Pictures  []string `json:"pictures"`
}

type seedHotel struct {
	Name       string     `json:"name"`
	Location   string     `json:"location"`
	PictureURL string     `json:"picture_url"`
	Stars      int        `json:"stars"`
	Rooms      []seedRoom `json:"rooms"`
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Str("file", cfg.SeedFile).Int("workers", cfg.SeedWorkers).Msg("seeder starting")

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("read seed file failed")
	}
	var hotels []seedHotel
	if err := json.Unmarshal(raw, &hotels); err != nil {
		log.Fatal().Err(err).Msg("parse seed file failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	repo := mysqlrepo.New(db)
	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, sh := range hotels {
		sh := sh

		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			h := buildHotel(sh)
			if err := repo.SeedHotel(ctx, &h); err != nil {
				log.Warn().Str("hotel", sh.Name).Err(err).Msg("seed failed")
				return
			}
			log.Info().Int64("id", h.ID).Str("hotel", h.Name).Int("rooms", len(h.Rooms)).Msg("seed ok")
		}()
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}

func buildHotel(sh seedHotel) domain.Hotel {
	rating, samples := aggregateRating()
	h := domain.Hotel{
		Name:       sh.Name,
		Location:   sh.Location,
		PictureURL: sh.PictureURL,
		Rating:     rating,
		NumRatings: samples,
		Stars:      sh.Stars,
	}
	for _, sr := range sh.Rooms {
		room := domain.Room{Type: sr.Type, Price: sr.Price, MaxGuests: sr.MaxGuests}
		for _, url := range sr.Pictures {
			room.Pictures = append(room.Pictures, domain.RoomPicture{URL: url})
		}
		h.Rooms = append(h.Rooms, room)
	}
	return h
}

// aggregateRating simulates an accumulated guest rating: between 100 and
// 1000 samples in [6,10], averaged and rounded to one decimal.
func aggregateRating() (float64, int) {
	samples := rand.Intn(901) + 100
	total := 0
	for i := 0; i < samples; i++ {
		total += rand.Intn(5) + 6
	}
	avg := math.Round(float64(total)/float64(samples)*10) / 10
	return avg, samples
}
