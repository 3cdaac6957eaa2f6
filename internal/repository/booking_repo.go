package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return database.Conn(ctx, r.db).Omit(clause.Associations).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := database.Conn(ctx, r.db).First(&b, id).Error; err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return &b, nil
}

// GetForUpdate locks the booking row until the surrounding transaction ends.
func (r *BookingRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := database.Conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, id).Error
	if err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return &b, nil
}

// GetDetailed loads the booking with its room and ordered payments.
func (r *BookingRepository) GetDetailed(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := withDetails(database.Conn(ctx, r.db)).First(&b, id).Error
	if err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return &b, nil
}

func (r *BookingRepository) ListByRoom(ctx context.Context, roomID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := database.Conn(ctx, r.db).
		Where("room_id = ?", roomID).
		Order("check_in_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	err := withDetails(database.Conn(ctx, r.db)).
		Order("check_in_date DESC, id DESC").
		Find(&out).Error
	return out, err
}

// ListCheckInBetween returns bookings whose check-in falls in [from, to).
func (r *BookingRepository) ListCheckInBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	err := withDetails(database.Conn(ctx, r.db)).
		Where("check_in_date >= ? AND check_in_date < ?", from, to).
		Order("check_in_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	res := database.Conn(ctx, r.db).
		Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) CountByRoom(ctx context.Context, roomID int64) (int64, error) {
	var n int64
	err := database.Conn(ctx, r.db).
		Model(&domain.Booking{}).
		Where("room_id = ?", roomID).
		Count(&n).Error
	return n, err
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Room").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date ASC, id ASC")
		})
}

func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
