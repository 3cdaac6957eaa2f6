package room

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
)

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	Delete(ctx context.Context, id int64) error
}

type BookingCounter interface {
	CountByRoom(ctx context.Context, roomID int64) (int64, error)
}

type ConflictFinder interface {
	Conflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time) ([]int64, error)
}
