package main

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_recommender/internal/adapters/observability"
	"hotel_recommender/internal/seed"
	"hotel_recommender/internal/shared"
	"hotel_recommender/internal/storage"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if cfg.StoreDSN == "" {
		log.Fatal().Msg("STORE_DSN must be set to seed the store")
	}

	log.Info().
		Str("driver", cfg.StoreDriver).
		Int("count", cfg.SeedCount).
		Int("batch", cfg.SeedBatch).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	repo, db, err := storage.Open(cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store connection failed")
	}
	defer db.Close()
	log.Info().Msg("db ping ok")

	batches := seed.Batches(seed.Generate(cfg.SeedCount, uint64(time.Now().UnixNano())), cfg.SeedBatch)

	sem := semaphore.NewWeighted(int64(max(cfg.SeedWorkers, 1)))
	var wg sync.WaitGroup
	var inserted, failed atomic.Int64

	for i, batch := range batches {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := repo.InsertHotels(ctx, batch); err != nil {
				failed.Add(int64(len(batch)))
				log.Warn().Int("batch", i+1).Err(err).Msg("insert batch failed")
				return
			}
			inserted.Add(int64(len(batch)))
			log.Info().Int("batch", i+1).Int("of", len(batches)).Msg("batch inserted")
		}()
	}

	wg.Wait()
	log.Info().Int64("inserted", inserted.Load()).Int64("failed", failed.Load()).Msg("seeding completed")
}
