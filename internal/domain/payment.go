package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentDeposit PaymentType = "DEPOSIT"
	PaymentRoom    PaymentType = "ROOM"
	PaymentRefund  PaymentType = "REFUND"
)

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodTransfer PaymentMethod = "TRANSFER"
	MethodCard     PaymentMethod = "CARD"
)

// ParsePaymentMethod accepts any casing; empty input means cash at the desk.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s))); m {
	case "":
		return MethodCash, nil
	case MethodCash, MethodTransfer, MethodCard:
		return m, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// Payment is an immutable ledger entry. Receipts are positive, refunds negative.
type Payment struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	BookingID     int64           `json:"booking_id" gorm:"not null;index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	PaymentMethod PaymentMethod   `json:"payment_method" gorm:"type:varchar(16);not null"`
	Type          PaymentType     `json:"type" gorm:"type:varchar(16);not null"`
	ReferenceID   *int64          `json:"reference_id,omitempty" gorm:"uniqueIndex:idx_payments_reference_id"`
	Note          string          `json:"note" gorm:"not null;default:''"`
	PaymentDate   time.Time       `json:"payment_date" gorm:"not null"`

	Reference *Payment `json:"-" gorm:"foreignKey:ReferenceID;constraint:OnDelete:RESTRICT"`
}

func (Payment) TableName() string { return "payments" }

func SumAmounts(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
