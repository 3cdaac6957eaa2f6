//go:build integration

package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/clock"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/availability"
	"hotelbooking/internal/lock"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/testutil"
)

func TestConcurrentOverlappingCreatesOnPostgres(t *testing.T) {
	db, _ := testutil.NewPostgres(t)
	room := testutil.InsertRoom(t, db, "101")

	bookings := repository.NewBookingRepository(db)
	svc := NewService(
		database.NewTransactor(db),
		bookings,
		repository.NewRoomRepository(db),
		repository.NewPaymentRepository(db),
		availability.NewChecker(bookings),
		lock.Noop{},
		clock.NewFixed(testNow),
		Options{},
	)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
		other     []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// every stay shares the night of the 12th
			in := fmt.Sprintf("2024-03-%02d", 10+i%3)
			_, err := svc.CreateBooking(context.Background(), req(room.ID, in, "2024-03-13", "300"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrRoomUnavailable):
				rejected++
			default:
				other = append(other, err)
			}
		}(i)
	}
	wg.Wait()

	require.Empty(t, other)
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, rejected)

	n, err := bookings.CountByRoom(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
