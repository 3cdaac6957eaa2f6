package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/testutil"
)

func TestOverlapGuardRejectsDirectInsert(t *testing.T) {
	db := testutil.NewSQLite(t)
	room := testutil.InsertRoom(t, db, "101")
	testutil.InsertBooking(t, db, room.ID, "2024-03-10", "2024-03-15", "500")

	clash := &domain.Booking{
		RoomID:       room.ID,
		GuestName:    "Second",
		CheckInDate:  testutil.Date(t, "2024-03-12"),
		CheckOutDate: testutil.Date(t, "2024-03-18"),
		TotalAmount:  decimal.NewFromInt(300),
		Status:       domain.BookingConfirmed,
	}
	err := db.Omit("Room", "Payments").Create(clash).Error
	require.Error(t, err)
	assert.True(t, database.IsConstraintViolation(err, database.ConstraintNoOverlap))
	assert.ErrorIs(t, database.GuardError(err), domain.ErrRoomUnavailable)
}

func TestOverlapGuardAllowsTouchingStays(t *testing.T) {
	db := testutil.NewSQLite(t)
	room := testutil.InsertRoom(t, db, "101")
	testutil.InsertBooking(t, db, room.ID, "2024-03-10", "2024-03-15", "500")

	testutil.InsertBooking(t, db, room.ID, "2024-03-15", "2024-03-20", "500")
	testutil.InsertBooking(t, db, room.ID, "2024-03-05", "2024-03-10", "500")

	other := testutil.InsertRoom(t, db, "102")
	testutil.InsertBooking(t, db, other.ID, "2024-03-11", "2024-03-14", "500")
}

func TestLedgerGuardRejectsPaymentAboveTotal(t *testing.T) {
	db := testutil.NewSQLite(t)
	room := testutil.InsertRoom(t, db, "101")
	b := testutil.InsertBooking(t, db, room.ID, "2024-03-10", "2024-03-15", "1000")
	testutil.InsertPayment(t, db, b.ID, "800")

	p := &domain.Payment{
		BookingID:     b.ID,
		Amount:        decimal.NewFromInt(300),
		PaymentMethod: domain.MethodCash,
		Type:          domain.PaymentRoom,
		PaymentDate:   time.Now().UTC(),
	}
	err := db.Omit("Reference").Create(p).Error
	require.Error(t, err)
	assert.ErrorIs(t, database.GuardError(err), domain.ErrOverpaymentRejected)

	testutil.InsertPayment(t, db, b.ID, "200")
}

func TestRefundOnceAndDeleteGuards(t *testing.T) {
	db := testutil.NewSQLite(t)
	room := testutil.InsertRoom(t, db, "101")
	b := testutil.InsertBooking(t, db, room.ID, "2024-03-10", "2024-03-15", "100")
	orig := testutil.InsertPayment(t, db, b.ID, "100")

	refund := func() error {
		return db.Omit("Reference").Create(&domain.Payment{
			BookingID:     b.ID,
			Amount:        decimal.NewFromInt(-100),
			PaymentMethod: domain.MethodCash,
			Type:          domain.PaymentRefund,
			ReferenceID:   &orig.ID,
			PaymentDate:   time.Now().UTC(),
		}).Error
	}
	require.NoError(t, refund())

	err := refund()
	require.Error(t, err)
	assert.ErrorIs(t, database.GuardError(err), domain.ErrAlreadyRefunded)

	// the original cannot go while its refund exists
	err = db.Delete(&domain.Payment{}, orig.ID).Error
	require.Error(t, err)
	assert.True(t, database.IsForeignKeyViolation(err))

	testutil.InsertPayment(t, db, b.ID, "100")

	var refundRow domain.Payment
	require.NoError(t, db.Where("reference_id = ?", orig.ID).First(&refundRow).Error)
	err = db.Delete(&domain.Payment{}, refundRow.ID).Error
	require.Error(t, err)
	assert.ErrorIs(t, database.GuardError(err), domain.ErrOverpaymentRejected)
}

func TestRoomDeleteRestrictedByBookings(t *testing.T) {
	db := testutil.NewSQLite(t)
	room := testutil.InsertRoom(t, db, "101")
	testutil.InsertBooking(t, db, room.ID, "2024-03-10", "2024-03-15", "100")

	err := db.Delete(&domain.Room{}, room.ID).Error
	require.Error(t, err)
	assert.True(t, database.IsForeignKeyViolation(err))
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	db := testutil.NewSQLite(t)
	tx := database.NewTransactor(db)
	boom := errors.New("boom")

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		if err := database.Conn(ctx, db).Create(&domain.Room{RoomNumber: "201"}).Error; err != nil {
			return err
		}
		// nested calls join the outer transaction
		return tx.WithinTx(ctx, func(ctx context.Context) error {
			return boom
		})
	})
	require.ErrorIs(t, err, boom)

	var n int64
	require.NoError(t, db.Model(&domain.Room{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestGuardErrorIgnoresOtherErrors(t *testing.T) {
	assert.NoError(t, database.GuardError(errors.New("disk full")))
	assert.NoError(t, database.GuardError(nil))
}
