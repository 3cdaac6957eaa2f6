package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"
)

func main() {
	floors := flag.Int("floors", 3, "number of floors to seed")
	perFloor := flag.Int("rooms", 8, "rooms per floor")
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
		log.Fatal().Err(err).Msg("DB connection failed")
	}

	ctx := context.Background()
	if err := database.Migrate(ctx, db, cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	created, err := seedRooms(ctx, repository.NewRoomRepository(db), roomNumbers(*floors, *perFloor))
	if err != nil {
		log.Fatal().Err(err).Msg("seeding rooms failed")
	}
	log.Info().Int("created", created).Msg("seed completed")
}

type roomStore interface {
	GetByNumber(ctx context.Context, number string) (*domain.Room, error)
	Create(ctx context.Context, room *domain.Room) error
}

// roomNumbers yields 101..1NN, 201..2NN and so on.
func roomNumbers(floors, perFloor int) []string {
	var out []string
	for f := 1; f <= floors; f++ {
		for n := 1; n <= perFloor; n++ {
			out = append(out, fmt.Sprintf("%d%02d", f, n))
		}
	}
	return out
}

// seedRooms creates the rooms that do not exist yet; reruns are no-ops.
func seedRooms(ctx context.Context, rooms roomStore, numbers []string) (int, error) {
	created := 0
	for _, number := range numbers {
		_, err := rooms.GetByNumber(ctx, number)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrRoomNotFound) {
			return created, err
		}
		if err := rooms.Create(ctx, &domain.Room{RoomNumber: number, ConditionStatus: domain.RoomConditionNormal}); err != nil {
			return created, fmt.Errorf("create room %s: %w", number, err)
		}
		created++
	}
	return created, nil
}
