package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "stayfinder/internal/adapters/http_server"
	"stayfinder/internal/adapters/observability"
	"stayfinder/internal/adapters/recordstore"
	redisad "stayfinder/internal/adapters/redis"
	"stayfinder/internal/app"
	"stayfinder/internal/domain"
	"stayfinder/internal/shared"
	"stayfinder/internal/storage/memory"
	mysqlrepo "stayfinder/internal/storage/mysql"
	"stayfinder/internal/storage/remote"
)

func openRepository(cfg shared.Config) domain.Repository {
	switch cfg.StoreBackend {
	case "remote":
		client, err := recordstore.New(cfg.StoreBaseURL, cfg.StoreAPIKey, cfg.StoreRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("record store client init failed")
		}
		log.Info().Str("base", cfg.StoreBaseURL).Msg("using remote record store")
		return remote.New(client)

	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db)

	default:
		log.Warn().Str("backend", cfg.StoreBackend).Msg("using in-memory repository with sample data")
		return memory.NewWithSampleData()
	}
}

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	repo := openRepository(cfg)
	defer func() {
		if err := repo.Close(); err != nil {
			log.Warn().Err(err).Msg("repository close failed")
		}
	}()

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	pricing := app.NewPricingService(repo)
	h := &server.Handlers{
		Search:   app.NewSearchService(repo, cache, cfg.CacheTTL),
		Pricing:  pricing,
		Bookings: app.NewBookingService(repo, pricing, cache),
		Reviews:  app.NewReviewService(repo, cache, cfg.CacheTTL),
	}

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
