package availability

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
)

type BookingLister interface {
	ListByRoom(ctx context.Context, roomID int64) ([]domain.Booking, error)
}

// Checker answers whether a proposed stay collides with a room's bookings.
type Checker struct {
	bookings BookingLister
}

func NewChecker(bookings BookingLister) *Checker {
	return &Checker{bookings: bookings}
}

// CheckConflict reports whether any booking of roomID overlaps [checkIn, checkOut).
// Store errors are returned as is.
func (c *Checker) CheckConflict(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	conflicts, err := c.Conflicts(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}

// Conflicts returns the ids of the overlapping bookings, in store order.
func (c *Checker) Conflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time) ([]int64, error) {
	existing, err := c.bookings.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	var ids []int64
	for _, b := range existing {
		if domain.Overlaps(b.CheckInDate, b.CheckOutDate, checkIn, checkOut) {
			ids = append(ids, b.ID)
		}
	}
	return ids, nil
}

// Overlaps is the half-open interval test used by CheckConflict.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return domain.Overlaps(aIn, aOut, bIn, bOut)
}
