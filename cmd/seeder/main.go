// Seeder pushes the demo catalog (hotels, rooms, reviews) into the
// remote record store. One worker per hotel, bounded by a semaphore.
package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"stayfinder/internal/adapters/observability"
	"stayfinder/internal/adapters/recordstore"
	"stayfinder/internal/domain"
	"stayfinder/internal/shared"
	"stayfinder/internal/storage/memory"
	"stayfinder/internal/storage/remote"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.StoreBaseURL).
		Int("workers", cfg.SeedWorkers).
		Int("hotels", len(memory.SampleHotels)).
		Msg("seeder starting")

	client, err := recordstore.New(cfg.StoreBaseURL, cfg.StoreAPIKey, cfg.StoreRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("record store client init failed")
	}
	repo := remote.New(client)

	roomsByHotel := map[int64][]domain.Room{}
	for _, rm := range memory.SampleRooms {
		roomsByHotel[rm.HotelID] = append(roomsByHotel[rm.HotelID], rm)
	}
	reviewsByHotel := map[int64][]domain.Review{}
	for _, rv := range memory.SampleReviews {
		reviewsByHotel[rv.HotelID] = append(reviewsByHotel[rv.HotelID], rv)
	}

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, h := range memory.SampleHotels {
		h := h

		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(hotel domain.Hotel) {
			defer wg.Done()
			defer sem.Release(1)

			if err := repo.UpsertHotel(ctx, hotel); err != nil {
				log.Warn().Int64("id", hotel.ID).Err(err).Msg("seed hotel failed")
				return
			}
			for _, rm := range roomsByHotel[hotel.ID] {
				if err := repo.UpsertRoom(ctx, rm); err != nil {
					log.Warn().Int64("room", rm.ID).Err(err).Msg("seed room failed")
				}
			}
			for _, rv := range reviewsByHotel[hotel.ID] {
				if _, err := repo.CreateReview(ctx, rv); err != nil {
					log.Warn().Int64("review", rv.ID).Err(err).Msg("seed review failed")
				}
			}
			log.Info().Int64("id", hotel.ID).Msg("seed ok")
		}(h)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
