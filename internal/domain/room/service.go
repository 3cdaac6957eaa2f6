package room

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/lock"
)

type Service struct {
	tx       Transactor
	rooms    RoomRepository
	bookings BookingCounter
	checker  ConflictFinder
	locker   lock.Locker
}

func NewService(tx Transactor, rooms RoomRepository, bookings BookingCounter, checker ConflictFinder, locker lock.Locker) *Service {
	if locker == nil {
		locker = lock.Noop{}
	}
	return &Service{tx: tx, rooms: rooms, bookings: bookings, checker: checker, locker: locker}
}

func (s *Service) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}
	return rooms, nil
}

// Availability answers whether the room is free for [check_in, check_out).
func (s *Service) Availability(ctx context.Context, roomID int64, q AvailabilityQuery) (*Availability, error) {
	if q.CheckIn == "" || q.CheckOut == "" {
		return nil, domain.ErrMissingField
	}
	checkIn, err := domain.ParseDate(q.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := domain.ParseDate(q.CheckOut)
	if err != nil {
		return nil, err
	}
	if !checkOut.After(checkIn) {
		return nil, domain.ErrInvalidDateRange
	}

	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, err
	}
	conflicts, err := s.checker.Conflicts(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if conflicts == nil {
		conflicts = []int64{}
	}
	return &Availability{
		RoomID:    roomID,
		CheckIn:   checkIn.Format(domain.DateLayout),
		CheckOut:  checkOut.Format(domain.DateLayout),
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

// DeleteRoom removes a room nobody has ever booked.
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	release, err := s.locker.Acquire(ctx, lock.RoomKey(id))
	if err != nil {
		return err
	}
	defer release()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.rooms.GetForUpdate(ctx, id); err != nil {
			return err
		}
		n, err := s.bookings.CountByRoom(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrRoomInUse
		}
		return s.rooms.Delete(ctx, id)
	})
	if err != nil {
		var derr *domain.Error
		if !errors.As(err, &derr) && database.IsForeignKeyViolation(err) {
			return domain.ErrRoomInUse
		}
		return err
	}

	log.Info().Int64("room_id", id).Msg("room deleted")
	return nil
}
