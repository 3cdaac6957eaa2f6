package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
)

// NewSQLite opens a private in-memory database with the full schema and guards.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:hotel_%s?mode=memory&cache=shared", name)

	db, err := database.Connect(dsn, database.Options{LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := database.Migrate(context.Background(), db, dsn); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func InsertRoom(t *testing.T, db *gorm.DB, number string) *domain.Room {
	t.Helper()
	room := &domain.Room{RoomNumber: number, ConditionStatus: domain.RoomConditionNormal}
	if err := db.Create(room).Error; err != nil {
		t.Fatalf("insert room: %v", err)
	}
	return room
}

// InsertBooking writes a booking directly, bypassing every service check.
func InsertBooking(t *testing.T, db *gorm.DB, roomID int64, checkIn, checkOut, total string) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		RoomID:       roomID,
		GuestName:    "Guest",
		CheckInDate:  Date(t, checkIn),
		CheckOutDate: Date(t, checkOut),
		TotalAmount:  decimal.RequireFromString(total),
		Status:       domain.BookingConfirmed,
	}
	if err := db.Omit("Room", "Payments").Create(b).Error; err != nil {
		t.Fatalf("insert booking: %v", err)
	}
	return b
}

func InsertPayment(t *testing.T, db *gorm.DB, bookingID int64, amount string) *domain.Payment {
	t.Helper()
	p := &domain.Payment{
		BookingID:     bookingID,
		Amount:        decimal.RequireFromString(amount),
		PaymentMethod: domain.MethodCash,
		Type:          domain.PaymentRoom,
		PaymentDate:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := db.Omit("Reference").Create(p).Error; err != nil {
		t.Fatalf("insert payment: %v", err)
	}
	return p
}

func Date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}
