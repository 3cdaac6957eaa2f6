package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"hotelbooking/internal/domain"
)

const (
	ConstraintNoOverlap      = "bookings_no_overlap"
	ConstraintPaymentsTotal  = "payments_total_within_booking"
	ConstraintRefundOnce     = "idx_payments_reference_id"
	sqliteRefundOnceColumn   = "payments.reference_id"
	pgForeignKeyViolation    = "23503"
	sqliteForeignKeyViolated = "FOREIGN KEY constraint failed"
)

// sqliteGuards mirror the Postgres exclusion constraint and ledger trigger.
var sqliteGuards = []string{
	`CREATE TRIGGER IF NOT EXISTS bookings_no_overlap_insert
BEFORE INSERT ON bookings
WHEN EXISTS (
	SELECT 1 FROM bookings b
	WHERE b.room_id = NEW.room_id
	  AND b.check_in_date < NEW.check_out_date
	  AND b.check_out_date > NEW.check_in_date
)
BEGIN
	SELECT RAISE(ABORT, 'bookings_no_overlap');
END`,
	`CREATE TRIGGER IF NOT EXISTS bookings_no_overlap_update
BEFORE UPDATE OF room_id, check_in_date, check_out_date ON bookings
WHEN EXISTS (
	SELECT 1 FROM bookings b
	WHERE b.id <> NEW.id
	  AND b.room_id = NEW.room_id
	  AND b.check_in_date < NEW.check_out_date
	  AND b.check_out_date > NEW.check_in_date
)
BEGIN
	SELECT RAISE(ABORT, 'bookings_no_overlap');
END`,
	`CREATE TRIGGER IF NOT EXISTS payments_total_within_booking_insert
AFTER INSERT ON payments
WHEN (SELECT ROUND(COALESCE(SUM(p.amount), 0), 2) FROM payments p WHERE p.booking_id = NEW.booking_id)
   > (SELECT ROUND(b.total_amount, 2) FROM bookings b WHERE b.id = NEW.booking_id)
BEGIN
	SELECT RAISE(ABORT, 'payments_total_within_booking');
END`,
	`CREATE TRIGGER IF NOT EXISTS payments_total_within_booking_delete
AFTER DELETE ON payments
WHEN (SELECT ROUND(COALESCE(SUM(p.amount), 0), 2) FROM payments p WHERE p.booking_id = OLD.booking_id)
   > (SELECT ROUND(b.total_amount, 2) FROM bookings b WHERE b.id = OLD.booking_id)
BEGIN
	SELECT RAISE(ABORT, 'payments_total_within_booking');
END`,
	`CREATE TRIGGER IF NOT EXISTS payments_immutable
BEFORE UPDATE OF booking_id, amount, type, reference_id ON payments
BEGIN
	SELECT RAISE(ABORT, 'payments_immutable');
END`,
}

func migrateSQLite(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Room{}, &domain.Booking{}, &domain.Payment{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range sqliteGuards {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("install guard: %w", err)
		}
	}
	return nil
}

// IsConstraintViolation reports whether err was raised by one of the named
// store guards, on either Postgres or SQLite.
func IsConstraintViolation(err error, names ...string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		for _, n := range names {
			if pgErr.ConstraintName == n {
				return true
			}
		}
		return false
	}
	msg := err.Error()
	for _, n := range names {
		if strings.Contains(msg, n) {
			return true
		}
	}
	return false
}

// IsForeignKeyViolation reports a RESTRICT foreign key refusing a delete or insert.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), sqliteForeignKeyViolated)
}

// GuardError translates a store guard violation into the matching domain
// error. It returns nil for any other error.
func GuardError(err error) error {
	switch {
	case err == nil:
		return nil
	case IsConstraintViolation(err, ConstraintNoOverlap):
		return domain.ErrRoomUnavailable
	case IsConstraintViolation(err, ConstraintRefundOnce, sqliteRefundOnceColumn):
		return domain.ErrAlreadyRefunded
	case IsConstraintViolation(err, ConstraintPaymentsTotal):
		return domain.ErrOverpaymentRejected
	default:
		return nil
	}
}
