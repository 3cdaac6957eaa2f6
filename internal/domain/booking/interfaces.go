package booking

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
)

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetDetailed(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListCheckInBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
}

type RoomLocker interface {
	GetForUpdate(ctx context.Context, id int64) (*domain.Room, error)
}

type PaymentWriter interface {
	InsertPayments(ctx context.Context, payments []domain.Payment) error
}

type ConflictChecker interface {
	CheckConflict(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error)
}
