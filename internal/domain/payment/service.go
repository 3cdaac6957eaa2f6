package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"hotelbooking/internal/clock"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/lock"
)

type Service struct {
	tx       Transactor
	bookings BookingRepository
	payments PaymentRepository
	locker   lock.Locker
	clock    clock.Clock
}

func NewService(tx Transactor, bookings BookingRepository, payments PaymentRepository, locker lock.Locker, clk clock.Clock) *Service {
	if locker == nil {
		locker = lock.Noop{}
	}
	if clk == nil {
		clk = clock.NewSystem(nil)
	}
	return &Service{tx: tx, bookings: bookings, payments: payments, locker: locker, clock: clk}
}

// AddPayment records a receipt against a booking. The amount may not exceed
// what is still owed; nothing is written when it does.
func (s *Service) AddPayment(ctx context.Context, req AddPaymentRequest) (*Receipt, error) {
	if req.BookingID <= 0 {
		return nil, domain.ErrMissingField
	}
	amount := domain.Money(req.Amount)
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, lock.BookingKey(req.BookingID))
	if err != nil {
		return nil, err
	}
	defer release()

	var receipt *Receipt
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, paid, err := s.position(ctx, req.BookingID)
		if err != nil {
			return err
		}
		remaining := domain.Money(b.TotalAmount.Sub(paid))
		if amount.GreaterThan(remaining) {
			return domain.NewOverpayment(remaining)
		}

		p := &domain.Payment{
			BookingID:     b.ID,
			Amount:        amount,
			PaymentMethod: method,
			Type:          domain.PaymentRoom,
			Note:          req.Note,
			PaymentDate:   s.clock.Now().UTC(),
		}
		if err := s.payments.Create(ctx, p); err != nil {
			if errors.Is(database.GuardError(err), domain.ErrOverpaymentRejected) {
				return domain.NewOverpayment(remaining)
			}
			return mapStoreError("insert payment", err)
		}

		newPaid := paid.Add(amount)
		newRemaining := remaining.Sub(amount)
		if err := s.syncStatus(ctx, b, newPaid); err != nil {
			return err
		}
		receipt = &Receipt{
			Payment:          p,
			PaidTotal:        newPaid,
			RemainingBalance: newRemaining,
			FullyPaid:        newRemaining.IsZero(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("booking_id", req.BookingID).
		Int64("payment_id", receipt.Payment.ID).
		Str("amount", amount.StringFixed(2)).
		Str("method", string(method)).
		Str("remaining", receipt.RemainingBalance.StringFixed(2)).
		Msg("payment recorded")
	return receipt, nil
}

// ListPayments returns a booking's ledger in the order it was written.
func (s *Service) ListPayments(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	out, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	if out == nil {
		out = []domain.Payment{}
	}
	return out, nil
}

// Refund reverses a payment once, as a negative entry pointing at it.
func (s *Service) Refund(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	if paymentID <= 0 {
		return nil, domain.ErrMissingField
	}
	original, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if original.Type == domain.PaymentRefund {
		return nil, domain.ErrRefundOfRefund
	}

	release, err := s.locker.Acquire(ctx, lock.BookingKey(original.BookingID))
	if err != nil {
		return nil, err
	}
	defer release()

	var refund *domain.Payment
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, paid, err := s.position(ctx, original.BookingID)
		if err != nil {
			return err
		}
		existing, err := s.payments.GetByReference(ctx, original.ID)
		if err != nil {
			return fmt.Errorf("look up refund: %w", err)
		}
		if existing != nil {
			return domain.ErrAlreadyRefunded
		}

		ref := original.ID
		refund = &domain.Payment{
			BookingID:     original.BookingID,
			Amount:        original.Amount.Neg(),
			PaymentMethod: original.PaymentMethod,
			Type:          domain.PaymentRefund,
			ReferenceID:   &ref,
			Note:          fmt.Sprintf("refund of payment #%d", original.ID),
			PaymentDate:   s.clock.Now().UTC(),
		}
		if err := s.payments.Create(ctx, refund); err != nil {
			return mapStoreError("insert refund", err)
		}
		return s.syncStatus(ctx, b, paid.Add(refund.Amount))
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("booking_id", refund.BookingID).
		Int64("payment_id", paymentID).
		Int64("refund_id", refund.ID).
		Str("amount", refund.Amount.StringFixed(2)).
		Msg("payment refunded")
	return refund, nil
}

// DeletePayment is the administrative removal path. An entry with a refund
// must keep it, and removing a refund may not leave the booking overpaid.
func (s *Service) DeletePayment(ctx context.Context, paymentID int64) error {
	if paymentID <= 0 {
		return domain.ErrMissingField
	}
	target, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}

	release, err := s.locker.Acquire(ctx, lock.BookingKey(target.BookingID))
	if err != nil {
		return err
	}
	defer release()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, paid, err := s.position(ctx, target.BookingID)
		if err != nil {
			return err
		}
		refund, err := s.payments.GetByReference(ctx, target.ID)
		if err != nil {
			return fmt.Errorf("look up refund: %w", err)
		}
		if refund != nil {
			return domain.ErrPaymentHasRefund
		}

		after := paid.Sub(target.Amount)
		if after.GreaterThan(b.TotalAmount) {
			return domain.NewOverpayment(domain.Money(b.TotalAmount.Sub(paid)))
		}
		if err := s.payments.Delete(ctx, target.ID); err != nil {
			return mapStoreError("delete payment", err)
		}
		return s.syncStatus(ctx, b, after)
	})
	if err != nil {
		return err
	}

	log.Info().
		Int64("booking_id", target.BookingID).
		Int64("payment_id", paymentID).
		Str("amount", target.Amount.StringFixed(2)).
		Msg("payment removed")
	return nil
}

// position locks the booking and sums its ledger.
// ReconcileStatus recomputes a booking's status from its ledger and stores it
// when it drifted. It returns the status before and after.
func (s *Service) ReconcileStatus(ctx context.Context, bookingID int64) (from, to domain.BookingStatus, err error) {
	release, err := s.locker.Acquire(ctx, lock.BookingKey(bookingID))
	if err != nil {
		return "", "", err
	}
	defer release()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, paid, err := s.position(ctx, bookingID)
		if err != nil {
			return err
		}
		from = b.Status
		if err := s.syncStatus(ctx, b, paid); err != nil {
			return err
		}
		to = b.Status
		return nil
	})
	return from, to, err
}

func (s *Service) position(ctx context.Context, bookingID int64) (*domain.Booking, decimal.Decimal, error) {
	b, err := s.bookings.GetForUpdate(ctx, bookingID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	existing, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("list payments: %w", err)
	}
	return b, domain.Money(domain.SumAmounts(existing)), nil
}

// syncStatus stores the status earned by paid when it differs from the current one.
func (s *Service) syncStatus(ctx context.Context, b *domain.Booking, paid decimal.Decimal) error {
	next := domain.DeriveStatus(b.TotalAmount, paid)
	if next == b.Status {
		return nil
	}
	if err := s.bookings.UpdateStatus(ctx, b.ID, next); err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	log.Info().
		Int64("booking_id", b.ID).
		Str("from", string(b.Status)).
		Str("to", string(next)).
		Msg("booking status changed")
	b.Status = next
	return nil
}

func mapStoreError(op string, err error) error {
	if guard := database.GuardError(err); guard != nil {
		return guard
	}
	return fmt.Errorf("%s: %w", op, err)
}
