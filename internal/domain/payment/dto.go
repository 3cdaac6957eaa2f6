package payment

import (
	"github.com/shopspring/decimal"

	"hotelbooking/internal/domain"
)

type AddPaymentRequest struct {
	BookingID     int64           `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" binding:"max=16"`
	Note          string          `json:"note" binding:"max=500"`
}

type RefundRequest struct {
	PaymentID int64 `json:"payment_id"`
}

// Receipt is the ledger position right after a payment was recorded.
type Receipt struct {
	Payment          *domain.Payment `json:"payment"`
	PaidTotal        decimal.Decimal `json:"paid_total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	FullyPaid        bool            `json:"fully_paid"`
}

type RefundResponse struct {
	Refund *domain.Payment `json:"refund"`
}
