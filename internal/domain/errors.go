package domain

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindBusy
)

// Error is a known failure of the booking core with a stable API code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindBusy:
		return http.StatusConflict
	default:
		// conflicts keep the 400 the front desk client already handles
		return http.StatusBadRequest
	}
}

func (e *Error) ErrorCode() string { return e.Code }

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

var (
	ErrMissingField         = newError(KindValidation, "MISSING_FIELD", "missing required fields")
	ErrInvalidAmount        = newError(KindValidation, "INVALID_AMOUNT", "invalid amount")
	ErrInvalidDate          = newError(KindValidation, "INVALID_DATE", "dates must be formatted as YYYY-MM-DD")
	ErrInvalidDateRange     = newError(KindValidation, "INVALID_DATE_RANGE", "check-out must be after check-in")
	ErrInvalidPaymentMethod = newError(KindValidation, "INVALID_PAYMENT_METHOD", "unknown payment method")
	ErrRefundOfRefund       = newError(KindValidation, "REFUND_OF_REFUND", "a refund entry cannot be refunded")

	ErrBookingNotFound = newError(KindNotFound, "BOOKING_NOT_FOUND", "booking not found")
	ErrPaymentNotFound = newError(KindNotFound, "PAYMENT_NOT_FOUND", "payment not found")
	ErrRoomNotFound    = newError(KindNotFound, "ROOM_NOT_FOUND", "room not found")

	ErrRoomUnavailable                = newError(KindConflict, "ROOM_UNAVAILABLE", "room already booked for selected dates")
	ErrDepositExceedsTotal            = newError(KindConflict, "DEPOSIT_EXCEEDS_TOTAL", "deposit cannot exceed total amount")
	ErrInsufficientReceivedForDeposit = newError(KindConflict, "INSUFFICIENT_RECEIVED_FOR_DEPOSIT", "received money is less than deposit amount")
	ErrOverpaymentRejected            = newError(KindConflict, "OVERPAYMENT_REJECTED", "payment exceeds remaining balance")
	ErrAlreadyRefunded                = newError(KindConflict, "ALREADY_REFUNDED", "payment already refunded")
	ErrPaymentHasRefund               = newError(KindConflict, "PAYMENT_HAS_REFUND", "payment has a refund and cannot be removed")
	ErrRoomInUse                      = newError(KindConflict, "ROOM_IN_USE", "cannot delete room with existing bookings")

	ErrBusy = newError(KindBusy, "BUSY", "resource is being modified, retry shortly")
)

// OverpaymentError reports how much can still be paid against a booking.
type OverpaymentError struct {
	Remaining decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("%s: remaining balance %s", ErrOverpaymentRejected.Message, e.Remaining.StringFixed(2))
}

func (e *OverpaymentError) Unwrap() error { return ErrOverpaymentRejected }

func (e *OverpaymentError) Status() int       { return ErrOverpaymentRejected.Status() }
func (e *OverpaymentError) ErrorCode() string { return ErrOverpaymentRejected.Code }

func (e *OverpaymentError) Details() any {
	return map[string]any{"remaining_balance": e.Remaining}
}

func NewOverpayment(remaining decimal.Decimal) error {
	return &OverpaymentError{Remaining: remaining}
}
