package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingPartial   BookingStatus = "PARTIAL"
	BookingPaid      BookingStatus = "PAID"
)

type Booking struct {
	ID           int64           `json:"id" gorm:"primaryKey"`
	RoomID       int64           `json:"room_id" gorm:"not null;index"`
	GuestName    string          `json:"guest_name" gorm:"not null"`
	Phone        string          `json:"phone" gorm:"not null;default:''"`
	CheckInDate  time.Time       `json:"check_in_date" gorm:"type:date;not null;index"`
	CheckOutDate time.Time       `json:"check_out_date" gorm:"type:date;not null"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	Status       BookingStatus   `json:"status" gorm:"type:varchar(16);not null"`
	Source       string          `json:"source" gorm:"not null;default:''"`
	Remark       string          `json:"remark" gorm:"not null;default:''"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Room     *Room     `json:"room,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:RESTRICT"`
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT"`
}

func (Booking) TableName() string { return "bookings" }

// DeriveStatus maps money received against a booking total to its settlement status.
func DeriveStatus(total, paid decimal.Decimal) BookingStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return BookingPaid
	case paid.IsPositive():
		return BookingPartial
	default:
		return BookingConfirmed
	}
}

// Overlaps reports whether [aIn, aOut) and [bIn, bOut) share at least one night.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}
