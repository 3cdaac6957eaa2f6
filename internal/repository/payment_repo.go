package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return database.Conn(ctx, r.db).Omit(clause.Associations).Create(p).Error
}

// InsertPayments writes the entries in one statement and fills in their ids.
func (r *PaymentRepository) InsertPayments(ctx context.Context, payments []domain.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	return database.Conn(ctx, r.db).Omit(clause.Associations).Create(&payments).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := database.Conn(ctx, r.db).First(&p, id).Error; err != nil {
		return nil, notFound(err, domain.ErrPaymentNotFound)
	}
	return &p, nil
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var out []domain.Payment
	err := database.Conn(ctx, r.db).
		Where("booking_id = ?", bookingID).
		Order("payment_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

// GetByReference returns the refund pointing at paymentID, or nil when there is none.
func (r *PaymentRepository) GetByReference(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	var p domain.Payment
	err := database.Conn(ctx, r.db).
		Where("reference_id = ?", paymentID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	res := database.Conn(ctx, r.db).Delete(&domain.Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}
