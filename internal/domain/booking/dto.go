package booking

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hotelbooking/internal/domain"
)

type CreateBookingRequest struct {
	RoomID         int64           `json:"room_id"`
	GuestName      string          `json:"guest_name" binding:"max=200"`
	Phone          string          `json:"phone" binding:"max=32"`
	CheckInDate    string          `json:"check_in_date"`
	CheckOutDate   string          `json:"check_out_date"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Source         string          `json:"source" binding:"max=64"`
	Remark         string          `json:"remark" binding:"max=1000"`
	DepositAmount  decimal.Decimal `json:"deposit_amount"`
	CashAmount     decimal.Decimal `json:"cash_amount"`
	TransferAmount decimal.Decimal `json:"transfer_amount"`
}

type CreateBookingResponse struct {
	BookingID int64 `json:"booking_id"`
}

// Summary is a booking with its money position.
type Summary struct {
	domain.Booking
	PaidAmount decimal.Decimal `json:"paid_amount"`
	Balance    decimal.Decimal `json:"balance"`
}

func summarize(b domain.Booking) Summary {
	paid := domain.Money(domain.SumAmounts(b.Payments))
	return Summary{
		Booking:    b,
		PaidAmount: paid,
		Balance:    domain.Money(b.TotalAmount.Sub(paid)),
	}
}

type stay struct {
	roomID   int64
	guest    string
	checkIn  time.Time
	checkOut time.Time
	total    decimal.Decimal
	deposit  decimal.Decimal
	cash     decimal.Decimal
	transfer decimal.Decimal
}

// validate applies the field checks that need no store access, in precedence order.
func (r CreateBookingRequest) validate() (stay, error) {
	guest := strings.TrimSpace(r.GuestName)
	if r.RoomID <= 0 || guest == "" || strings.TrimSpace(r.CheckInDate) == "" || strings.TrimSpace(r.CheckOutDate) == "" {
		return stay{}, domain.ErrMissingField
	}

	in, err := domain.ParseDate(r.CheckInDate)
	if err != nil {
		return stay{}, err
	}
	out, err := domain.ParseDate(r.CheckOutDate)
	if err != nil {
		return stay{}, err
	}
	if !out.After(in) {
		return stay{}, domain.ErrInvalidDateRange
	}

	s := stay{
		roomID:   r.RoomID,
		guest:    guest,
		checkIn:  in,
		checkOut: out,
		total:    domain.Money(r.TotalAmount),
		deposit:  domain.Money(r.DepositAmount),
		cash:     domain.Money(r.CashAmount),
		transfer: domain.Money(r.TransferAmount),
	}
	if !s.total.IsPositive() || s.deposit.IsNegative() || s.cash.IsNegative() || s.transfer.IsNegative() {
		return stay{}, domain.ErrInvalidAmount
	}
	return s, nil
}
