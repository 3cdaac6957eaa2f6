package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"hotelbooking/internal/clock"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/lock"
)

type Options struct {
	// Location decides which calendar day counts as "today".
	Location *time.Location
	// InitialStatusFromReceipts stores the status earned by money taken at
	// creation instead of always starting CONFIRMED.
	InitialStatusFromReceipts bool
}

type Service struct {
	tx       Transactor
	bookings BookingRepository
	rooms    RoomLocker
	payments PaymentWriter
	checker  ConflictChecker
	locker   lock.Locker
	clock    clock.Clock
	opts     Options
}

func NewService(
	tx Transactor,
	bookings BookingRepository,
	rooms RoomLocker,
	payments PaymentWriter,
	checker ConflictChecker,
	locker lock.Locker,
	clk clock.Clock,
	opts Options,
) *Service {
	if locker == nil {
		locker = lock.Noop{}
	}
	if clk == nil {
		clk = clock.NewSystem(opts.Location)
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{
		tx:       tx,
		bookings: bookings,
		rooms:    rooms,
		payments: payments,
		checker:  checker,
		locker:   locker,
		clock:    clk,
		opts:     opts,
	}
}

// CreateBooking checks availability and money taken at the desk, then stores
// the booking and its initial payments in one transaction.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	in, err := req.validate()
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, lock.RoomKey(in.roomID))
	if err != nil {
		return nil, err
	}
	defer release()

	var created *domain.Booking
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.rooms.GetForUpdate(ctx, in.roomID); err != nil {
			return err
		}

		conflict, err := s.checker.CheckConflict(ctx, in.roomID, in.checkIn, in.checkOut)
		if err != nil {
			return fmt.Errorf("check availability: %w", err)
		}
		if conflict {
			return domain.ErrRoomUnavailable
		}

		if in.deposit.GreaterThan(in.total) {
			return domain.ErrDepositExceedsTotal
		}
		if in.cash.Add(in.transfer).LessThan(in.deposit) {
			return domain.ErrInsufficientReceivedForDeposit
		}
		received := in.deposit.Add(in.cash).Add(in.transfer)
		if received.GreaterThan(in.total) {
			return domain.NewOverpayment(in.total)
		}

		status := domain.BookingConfirmed
		if s.opts.InitialStatusFromReceipts {
			status = domain.DeriveStatus(in.total, received)
		}

		b := &domain.Booking{
			RoomID:       in.roomID,
			GuestName:    in.guest,
			Phone:        req.Phone,
			CheckInDate:  in.checkIn,
			CheckOutDate: in.checkOut,
			TotalAmount:  in.total,
			Status:       status,
			Source:       req.Source,
			Remark:       req.Remark,
		}
		if err := s.bookings.Create(ctx, b); err != nil {
			return mapStoreError("create booking", err)
		}

		payments := initialPayments(b.ID, in, s.clock.Now().UTC())
		if err := s.payments.InsertPayments(ctx, payments); err != nil {
			return mapStoreError("insert initial payments", err)
		}
		b.Payments = payments
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("booking_id", created.ID).
		Int64("room_id", created.RoomID).
		Str("check_in", created.CheckInDate.Format(domain.DateLayout)).
		Str("check_out", created.CheckOutDate.Format(domain.DateLayout)).
		Str("total", created.TotalAmount.StringFixed(2)).
		Int("payments", len(created.Payments)).
		Msg("booking created")
	return created, nil
}

// initialPayments turns the desk amounts into ledger entries, skipping zeros.
func initialPayments(bookingID int64, in stay, now time.Time) []domain.Payment {
	var out []domain.Payment
	add := func(amount decimal.Decimal, typ domain.PaymentType, method domain.PaymentMethod) {
		if !amount.IsPositive() {
			return
		}
		out = append(out, domain.Payment{
			BookingID:     bookingID,
			Amount:        amount,
			Type:          typ,
			PaymentMethod: method,
			PaymentDate:   now,
		})
	}
	add(in.deposit, domain.PaymentDeposit, domain.MethodCash)
	add(in.cash, domain.PaymentRoom, domain.MethodCash)
	add(in.transfer, domain.PaymentRoom, domain.MethodTransfer)
	return out
}

func (s *Service) ListBookings(ctx context.Context) ([]Summary, error) {
	rows, err := s.bookings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return summarizeAll(rows), nil
}

// TodayCheckIns lists bookings arriving on the current hotel calendar day.
func (s *Service) TodayCheckIns(ctx context.Context) ([]Summary, error) {
	today := domain.DateOf(s.clock.Now().In(s.opts.Location))
	rows, err := s.bookings.ListCheckInBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list today's check-ins: %w", err)
	}
	return summarizeAll(rows), nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*Summary, error) {
	b, err := s.bookings.GetDetailed(ctx, id)
	if err != nil {
		return nil, err
	}
	out := summarize(*b)
	return &out, nil
}

func summarizeAll(rows []domain.Booking) []Summary {
	out := make([]Summary, 0, len(rows))
	for _, b := range rows {
		out = append(out, summarize(b))
	}
	return out
}

func mapStoreError(op string, err error) error {
	if guard := database.GuardError(err); guard != nil {
		return guard
	}
	return fmt.Errorf("%s: %w", op, err)
}
