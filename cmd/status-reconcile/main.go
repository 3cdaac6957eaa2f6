package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"

	"hotelbooking/internal/clock"
	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain/payment"
	"hotelbooking/internal/repository"
)

func main() {
	bookingID := flag.Int64("booking-id", 0, "Optional: only reconcile this booking")
	continueOnError := flag.Bool("continue-on-error", false, "Skip failing bookings and continue with the rest")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := database.Connect(cfg.DatabaseURL, database.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		LogLevel:     logger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	bookings := repository.NewBookingRepository(db)
	svc := payment.NewService(
		database.NewTransactor(db),
		bookings,
		repository.NewPaymentRepository(db),
		nil,
		clock.NewSystem(cfg.Location),
	)

	ctx := context.Background()
	ids := []int64{*bookingID}
	if *bookingID == 0 {
		if ids, err = bookingIDs(ctx, bookings); err != nil {
			log.Fatal().Err(err).Msg("list bookings failed")
		}
	}

	res := reconcile(ctx, svc, ids, *continueOnError)
	log.Info().
		Int("checked", res.checked).
		Int("repaired", res.repaired).
		Int("failed", res.failed).
		Msg("status reconcile finished")
	if res.failed > 0 {
		os.Exit(1)
	}
}
