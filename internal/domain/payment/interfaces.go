package payment

import (
	"context"

	"hotelbooking/internal/domain"
)

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type BookingRepository interface {
	GetForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	GetByReference(ctx context.Context, paymentID int64) (*domain.Payment, error)
	Delete(ctx context.Context, id int64) error
}
