//go:build integration

package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/testutil"
)

func TestPostgresMigrationsAreIdempotent(t *testing.T) {
	db, dsn := testutil.NewPostgres(t)

	require.NoError(t, database.Migrate(context.Background(), db, dsn))

	var applied int64
	require.NoError(t, db.Table("schema_migrations").Count(&applied).Error)
	assert.EqualValues(t, 2, applied)
}

func TestPostgresGuards(t *testing.T) {
	db, _ := testutil.NewPostgres(t)
	room := testutil.InsertRoom(t, db, "101")
	b := testutil.InsertBooking(t, db, room.ID, "2024-03-10", "2024-03-15", "1000")

	// exclusion constraint
	err := db.Omit("Room", "Payments").Create(&domain.Booking{
		RoomID:       room.ID,
		GuestName:    "Clash",
		CheckInDate:  testutil.Date(t, "2024-03-08"),
		CheckOutDate: testutil.Date(t, "2024-03-16"),
		TotalAmount:  decimal.NewFromInt(10),
		Status:       domain.BookingConfirmed,
	}).Error
	require.Error(t, err)
	assert.ErrorIs(t, database.GuardError(err), domain.ErrRoomUnavailable)

	testutil.InsertBooking(t, db, room.ID, "2024-03-15", "2024-03-17", "100")

	// ledger trigger
	testutil.InsertPayment(t, db, b.ID, "800")
	err = db.Omit("Reference").Create(&domain.Payment{
		BookingID:     b.ID,
		Amount:        decimal.NewFromInt(300),
		PaymentMethod: domain.MethodCash,
		Type:          domain.PaymentRoom,
		PaymentDate:   time.Now().UTC(),
	}).Error
	require.Error(t, err)
	assert.ErrorIs(t, database.GuardError(err), domain.ErrOverpaymentRejected)

	// dates round-trip as calendar days
	var got domain.Booking
	require.NoError(t, db.First(&got, b.ID).Error)
	assert.True(t, got.CheckInDate.Equal(testutil.Date(t, "2024-03-10")))
}
