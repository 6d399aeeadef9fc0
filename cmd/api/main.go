package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "hotelbooking/internal/adapters/http_server"
	"hotelbooking/internal/adapters/observability"
	redisad "hotelbooking/internal/adapters/redis"
	"hotelbooking/internal/adapters/smtp"
	"hotelbooking/internal/app"
	"hotelbooking/internal/shared"
	mysqlrepo "hotelbooking/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	mailer, err := smtp.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.Sender, cfg.SenderName, cfg.MailRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("smtp client init failed")
	}

	catalog := app.NewCatalogService(repo, cache, cfg.CacheTTL)
	bookings := app.NewBookingService(repo, repo)
	users := app.NewUserService(repo, mailer)
	tokens := app.NewTokenIssuer(cfg.JWTKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL)
	cleanup := app.NewCleanupService(repo, cfg.UnverifiedTTL)

	// background sweep of unverified accounts
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal().Err(err).Msg("scheduler init failed")
	}
	_, err = sched.NewJob(
		gocron.DurationJob(cfg.SweepInterval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if _, err := cleanup.Sweep(ctx, time.Now().UTC()); err != nil {
				log.Error().Err(err).Msg("unverified sweep failed")
			}
		}),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("sweep job registration failed")
	}
	sched.Start()
	defer func() { _ = sched.Shutdown() }()
	log.Info().Dur("interval", cfg.SweepInterval).Dur("ttl", cfg.UnverifiedTTL).Msg("cleanup scheduler started")

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Catalog:  catalog,
		Bookings: bookings,
		Users:    users,
		Tokens:   tokens,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
