package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"hotelbooking/internal/domain"
)

type reconciler interface {
	ReconcileStatus(ctx context.Context, bookingID int64) (from, to domain.BookingStatus, err error)
}

type bookingLister interface {
	List(ctx context.Context) ([]domain.Booking, error)
}

type result struct {
	checked  int
	repaired int
	failed   int
}

func bookingIDs(ctx context.Context, bookings bookingLister) ([]int64, error) {
	rows, err := bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(rows))
	for _, b := range rows {
		ids = append(ids, b.ID)
	}
	return ids, nil
}

// reconcile stops at the first failure unless continueOnError is set.
func reconcile(ctx context.Context, svc reconciler, ids []int64, continueOnError bool) result {
	var res result
	for _, id := range ids {
		from, to, err := svc.ReconcileStatus(ctx, id)
		if err != nil {
			res.failed++
			log.Error().Err(err).Int64("booking_id", id).Msg("reconcile failed")
			if !continueOnError {
				return res
			}
			continue
		}
		res.checked++
		if from != to {
			res.repaired++
		}
	}
	return res
}
